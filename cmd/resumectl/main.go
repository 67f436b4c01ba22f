// Command resumectl edits résumés through the REST API.
//
//	resumectl templates
//	resumectl list
//	resumectl create -title CV -template modern
//	resumectl set <id> <section> <field> <value>
//	resumectl add <id> <section> [value]
//	resumectl pdf [-template id] [-o file] <id>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"curriculum-backend/internal/client"
	"curriculum-backend/internal/editor"
	"curriculum-backend/resume/forms"
)

func main() {
	baseURL := flag.String("api", envOr("CURRICULUM_API_URL", "http://localhost:8080"), "API base URL")
	token := flag.String("token", os.Getenv("CURRICULUM_TOKEN"), "bearer token")
	guestID := flag.String("guest", os.Getenv("CURRICULUM_GUEST_ID"), "guest identity when no token is set")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	c := client.New(*baseURL,
		client.WithToken(*token),
		client.WithGuestID(*guestID),
		client.WithTimeout(*timeout),
	)
	ctx := context.Background()

	var err error
	switch args[0] {
	case "templates":
		err = listTemplates(ctx, c)
	case "list":
		err = listResumes(ctx, c)
	case "create":
		err = create(ctx, c, args[1:])
	case "set":
		err = patch(ctx, c, args[1:], forms.OpSet)
	case "add":
		err = patch(ctx, c, args[1:], forms.OpAdd)
	case "pdf":
		err = downloadPDF(ctx, c, args[1:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		var se *editor.SaveError
		if errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, se.Message)
			for _, fe := range se.Fields {
				fmt.Fprintf(os.Stderr, "  %s: %v\n", fe.Field, fe.Messages)
			}
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: resumectl [flags] templates|list|create|set|add|pdf ...")
	flag.PrintDefaults()
}

func listTemplates(ctx context.Context, c *client.Client) error {
	items, err := c.ListTemplates(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, t := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Description)
	}
	return w.Flush()
}

func listResumes(ctx context.Context, c *client.Client) error {
	items, err := c.ListResumes(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTEMPLATE\tVERSION")
	for _, r := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.ID, r.Title, r.Template, r.Version)
	}
	return w.Flush()
}

func create(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "résumé title")
	template := fs.String("template", "", "template id")
	_ = fs.Parse(args)

	doc, err := c.CreateResume(ctx, *title, *template)
	if err != nil {
		return err
	}
	fmt.Println(doc.ID)
	return nil
}

// patch loads the résumé, applies one edit in an editor session and saves it.
func patch(ctx context.Context, c *client.Client, args []string, op forms.Op) error {
	if len(args) < 2 {
		return errors.New("want <id> <section> ...")
	}
	id, section := args[0], forms.Section(args[1])

	doc, err := c.GetResume(ctx, id)
	if err != nil {
		return err
	}
	sess := editor.NewSession(doc, editor.ClientStore{Client: c, ResumeID: id})

	p := forms.Patch{Section: section, Op: op}
	switch op {
	case forms.OpSet:
		rest := args[2:]
		if isList(section) {
			if len(rest) < 3 {
				return errors.New("want <id> <section> <index> <field> <value>")
			}
			idx, err := strconv.Atoi(rest[0])
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}
			p.Index, rest = idx, rest[1:]
		}
		if len(rest) < 2 {
			return errors.New("want <id> <section> <field> <value>")
		}
		p.Field, p.Value = rest[0], rest[1]
	case forms.OpAdd:
		if len(args) > 2 {
			p.Value = args[2]
		}
	}

	if err := sess.Apply(p); err != nil {
		return err
	}
	for _, fe := range sess.FieldErrors() {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", fe.Field, fe.Messages)
	}
	if err := sess.Save(ctx); err != nil {
		return err
	}
	fmt.Printf("saved %s at version %d\n", id, sess.Document().Version)
	return nil
}

func isList(s forms.Section) bool {
	switch s {
	case forms.SectionExperiences, forms.SectionEducation, forms.SectionProjects,
		forms.SectionCertifications, forms.SectionLanguages:
		return true
	}
	return false
}

func downloadPDF(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("pdf", flag.ExitOnError)
	template := fs.String("template", "", "template id; empty uses the résumé's own")
	out := fs.String("o", "", "output file; defaults to the server-suggested name")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("want <id>")
	}

	data, name, err := c.DownloadPDF(ctx, fs.Arg(0), *template)
	if err != nil {
		return err
	}
	if *out != "" {
		name = *out
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", name, len(data))
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
