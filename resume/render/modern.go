package render

import (
	"strings"

	"curriculum-backend/resume/viewmodel"
)

// modern: centered header with an inline contact row and one full-width column.
func modern[N any](f Factory[N], vm *viewmodel.Resume, th Theme) N {
	body := Style{FontSize: 10, LineHeight: 1.4, Color: TextColor}
	title := Style{FontSize: 11, Bold: true, Color: "#000000"}
	subtitle := Style{FontSize: 10, Bold: true, Color: TextColor}
	date := Style{FontSize: 9, Italic: true, Color: FaintColor}
	block := Style{Margin: Box{Bottom: 10}}

	heading := func(text string) N {
		return f.Text(Style{
			FontSize: 11, Bold: true, Uppercase: true, Color: th.Accent,
			BorderBottom: 1, BorderColor: th.Accent,
			Padding: Box{Bottom: 2}, Margin: Box{Bottom: 8},
		}, text)
	}
	section := func(text string, kids ...N) N {
		return f.View(Style{Margin: Box{Bottom: 16}}, append([]N{heading(text)}, kids...)...)
	}

	c := vm.ContactInfo
	contactStyle := Style{FontSize: 9, Color: th.Accent}
	var contact nodes[N]
	if c.Phone != "" {
		contact.add(f.Text(Style{FontSize: 9, Color: TextColor}, c.Phone))
	}
	if c.Email != "" {
		contact.add(f.Link(contactStyle, mailto(c.Email), c.Email))
	}
	if c.LinkedIn != "" {
		contact.add(f.Link(contactStyle, c.LinkedIn, "LinkedIn"))
	}
	if c.GitHub != "" {
		contact.add(f.Link(contactStyle, c.GitHub, "GitHub"))
	}
	if c.Website != "" {
		contact.add(f.Link(contactStyle, c.Website, "Portfolio"))
	}
	if c.Location != "" {
		contact.add(f.Text(Style{FontSize: 9, Color: TextColor}, c.Location))
	}

	var header nodes[N]
	header.add(
		f.Text(Style{FontSize: 22, Bold: true, Uppercase: true, Color: th.Accent, Align: AlignCenter, Margin: Box{Bottom: 4}}, vm.ProfileInfo.FullName),
		f.Text(Style{FontSize: 12, Uppercase: true, Color: SubtleColor, Align: AlignCenter, Margin: Box{Bottom: 6}}, vm.ProfileInfo.Designation),
	)
	if len(contact) > 0 {
		header.add(f.View(Style{Row: true, Wrap: true, Align: AlignCenter, Gap: 12}, contact...))
	}

	var content nodes[N]
	content.add(f.View(Style{Align: AlignCenter, BorderBottom: 2, BorderColor: th.Accent, Padding: Box{Bottom: 10}, Margin: Box{Bottom: 20}}, header...))

	if vm.ProfileInfo.Summary != "" {
		content.add(section("Summary", f.Text(body, vm.ProfileInfo.Summary)))
	}

	if len(vm.WorkExperience) > 0 {
		var items nodes[N]
		for _, exp := range vm.WorkExperience {
			var head nodes[N]
			head.add(f.View(Style{Grow: true}, f.Text(title, exp.Title), f.Text(subtitle, joinNonEmpty(", ", exp.Company, exp.Location))))
			if r := DateRange(exp.StartDate, exp.EndDate, " – "); r != "" {
				head.add(f.Text(date, r))
			}
			var kids nodes[N]
			kids.add(f.View(Style{Row: true, SpaceBetween: true, Margin: Box{Bottom: 2}}, head...))
			if bullets := bulletList(f, exp.Description, Style{FontSize: 10, Color: th.Accent, Padding: Box{Right: 5}}, body); len(bullets) > 0 {
				kids.add(f.View(Style{Margin: Box{Left: 10}}, bullets...))
			}
			items.add(f.View(block, kids...))
		}
		content.add(section("Experience", items...))
	}

	if len(vm.Projects) > 0 {
		var items nodes[N]
		for _, p := range vm.Projects {
			head := nodes[N]{f.Text(title, p.Title)}
			link := Style{FontSize: 9, Color: th.Accent}
			if p.LiveDemo != "" {
				head.add(f.Link(link, p.LiveDemo, "[Live]"))
			}
			if p.GitHub != "" {
				head.add(f.Link(link, p.GitHub, "[Code]"))
			}
			var kids nodes[N]
			kids.add(f.View(Style{Row: true, Gap: 5, Margin: Box{Bottom: 2}}, head...))
			if p.Description != "" {
				kids.add(f.Text(body, p.Description))
			}
			if len(p.Technologies) > 0 {
				kids.add(f.Text(Style{FontSize: 9, Italic: true, Color: th.Muted, Margin: Box{Top: 2}}, strings.Join(p.Technologies, " · ")))
			}
			items.add(f.View(block, kids...))
		}
		content.add(section("Projects", items...))
	}

	if len(vm.Education) > 0 {
		var items nodes[N]
		for _, ed := range vm.Education {
			var right nodes[N]
			if r := DateRange(ed.StartDate, ed.EndDate, " – "); r != "" {
				right.add(f.Text(date.Merge(Style{Align: AlignRight}), r))
			}
			if ed.GPA != "" {
				right.add(f.Text(date.Merge(Style{Align: AlignRight}), "GPA: "+ed.GPA))
			}
			head := nodes[N]{f.View(Style{Grow: true}, f.Text(title, ed.Institution), f.Text(subtitle, joinNonEmpty(", ", ed.Degree, ed.Field)))}
			if len(right) > 0 {
				head.add(f.View(Style{}, right...))
			}
			items.add(f.View(block, f.View(Style{Row: true, SpaceBetween: true}, head...)))
		}
		content.add(section("Education", items...))
	}

	if len(vm.Certifications) > 0 || len(vm.Languages) > 0 {
		var cols nodes[N]
		if len(vm.Certifications) > 0 {
			var items nodes[N]
			for _, cert := range vm.Certifications {
				text := cert.Name
				if cert.IssueDate != "" {
					text += " (" + FormatYearMonth(cert.IssueDate) + ")"
				}
				items.add(f.View(Style{Row: true, Margin: Box{Bottom: 2}},
					f.Text(Style{FontSize: 10, Color: th.Accent, Padding: Box{Right: 5}}, bulletGlyph),
					f.Text(Style{FontSize: 9, Grow: true}, text),
				))
			}
			cols.add(f.View(Style{Grow: true}, append([]N{heading("Certifications")}, items...)...))
		}
		if len(vm.Languages) > 0 {
			var items nodes[N]
			for _, l := range vm.Languages {
				text := l.Name
				if l.Level != "" {
					text += " (" + l.Level + ")"
				}
				items.add(f.Text(Style{FontSize: 9}, text))
			}
			cols.add(f.View(Style{Grow: true}, heading("Languages"), f.View(Style{Row: true, Wrap: true, Gap: 6}, items...)))
		}
		content.add(f.View(Style{Row: true, Gap: 20, Margin: Box{Bottom: 16}}, cols...))
	}

	if len(vm.Skills) > 0 {
		names := make([]string, 0, len(vm.Skills))
		for _, s := range vm.Skills {
			names = append(names, s.Name)
		}
		pill := Style{FontSize: 9, Color: th.Accent, Background: th.SoftFill, Padding: XY(6, 2)}
		content.add(section("Skills", tags(f, names, pill, 6)))
	}

	return f.Page(Style{Padding: XY(40, 30), FontSize: 10, LineHeight: 1.5, Color: "#1f2937"}, content...)
}
