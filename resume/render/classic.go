package render

import "curriculum-backend/resume/viewmodel"

// classic: header across the page, contact sidebar on the left, experience and projects in
// the main column.
func classic[N any](f Factory[N], vm *viewmodel.Resume, th Theme) N {
	body := Style{FontSize: 10, Color: TextColor}
	title := Style{FontSize: 10, Bold: true, Color: InkColor}
	subtitle := Style{FontSize: 9, Italic: true, Color: SubtleColor}
	date := Style{FontSize: 9, Color: FaintColor}
	link := Style{FontSize: 10, Color: th.Accent}
	block := Style{Margin: Box{Bottom: 8}}

	section := func(heading string, kids ...N) N {
		head := f.Text(Style{
			FontSize: 11, Bold: true, Uppercase: true, Color: th.Accent,
			BorderBottom: 1, BorderColor: th.Accent,
			Padding: Box{Bottom: 2}, Margin: Box{Bottom: 8},
		}, heading)
		return f.View(Style{Margin: Box{Bottom: 15}}, append([]N{head}, kids...)...)
	}

	var header nodes[N]
	header.add(
		f.Text(Style{FontSize: 24, Bold: true, Uppercase: true, Color: th.Accent, Margin: Box{Bottom: 12}}, vm.ProfileInfo.FullName),
		f.Text(Style{FontSize: 12, Uppercase: true, Color: SubtleColor, Margin: Box{Top: 4}}, vm.ProfileInfo.Designation),
	)
	if vm.ProfileInfo.Summary != "" {
		header.add(f.Text(body.Merge(Style{Margin: Box{Top: 8}}), vm.ProfileInfo.Summary))
	}

	var sidebar nodes[N]
	c := vm.ContactInfo
	var contact nodes[N]
	if c.Location != "" {
		contact.add(f.Text(body, c.Location))
	}
	if c.Phone != "" {
		contact.add(f.Text(body, c.Phone))
	}
	if c.Email != "" {
		contact.add(f.Link(link, mailto(c.Email), c.Email))
	}
	if c.LinkedIn != "" {
		contact.add(f.Link(link, c.LinkedIn, "LinkedIn"))
	}
	if c.GitHub != "" {
		contact.add(f.Link(link, c.GitHub, "GitHub"))
	}
	if c.Website != "" {
		contact.add(f.Link(link, c.Website, "Portfolio"))
	}
	if len(contact) > 0 {
		sidebar.add(section("Contact", f.View(Style{Gap: 4}, contact...)))
	}

	if len(vm.Education) > 0 {
		var items nodes[N]
		for _, ed := range vm.Education {
			var kids nodes[N]
			kids.add(f.Text(title, ed.Institution), f.Text(subtitle, ed.Degree))
			if r := DateRange(ed.StartDate, ed.EndDate, " – "); r != "" {
				kids.add(f.Text(date, r))
			}
			if ed.GPA != "" {
				kids.add(f.Text(body, "GPA: "+ed.GPA))
			}
			items.add(f.View(block, kids...))
		}
		sidebar.add(section("Education", items...))
	}

	if len(vm.Skills) > 0 {
		names := make([]string, 0, len(vm.Skills))
		for _, s := range vm.Skills {
			names = append(names, s.Name)
		}
		pill := Style{FontSize: 9, Color: th.Accent, Background: th.TagFill, Padding: XY(4, 2)}
		sidebar.add(section("Skills", tags(f, names, pill, 4)))
	}

	if len(vm.Languages) > 0 {
		var items nodes[N]
		for _, l := range vm.Languages {
			text := l.Name
			if l.Level != "" {
				text += " (" + l.Level + ")"
			}
			items.add(f.Text(body, text))
		}
		sidebar.add(section("Languages", items...))
	}

	if len(vm.Certifications) > 0 {
		var items nodes[N]
		for _, cert := range vm.Certifications {
			var kids nodes[N]
			kids.add(f.Text(title, cert.Name))
			if cert.Issuer != "" {
				kids.add(f.Text(body, cert.Issuer))
			}
			if cert.IssueDate != "" {
				kids.add(f.Text(date, FormatYearMonth(cert.IssueDate)))
			}
			items.add(f.View(Style{Margin: Box{Bottom: 4}}, kids...))
		}
		sidebar.add(section("Certifications", items...))
	}

	var main nodes[N]
	if len(vm.WorkExperience) > 0 {
		var items nodes[N]
		for _, exp := range vm.WorkExperience {
			var kids nodes[N]
			kids.add(f.Text(title, exp.Title))
			var meta nodes[N]
			meta.add(f.Text(subtitle, joinNonEmpty(" | ", exp.Company, exp.Location)))
			if r := DateRange(exp.StartDate, exp.EndDate, " – "); r != "" {
				meta.add(f.Text(date, r))
			}
			kids.add(f.View(Style{Row: true, SpaceBetween: true, Margin: Box{Bottom: 2}}, meta...))
			kids.add(bulletList(f, exp.Description, Style{FontSize: 10, Color: th.Accent, Padding: Box{Right: 5}}, body)...)
			items.add(f.View(block, kids...))
		}
		main.add(section("Professional Experience", items...))
	}

	if len(vm.Projects) > 0 {
		var items nodes[N]
		for _, p := range vm.Projects {
			var kids nodes[N]
			head := []N{f.Text(title, p.Title)}
			if links, ok := linkRow(f, Style{FontSize: 8, Color: th.Accent}, 8,
				[2]string{p.LiveDemo, "Live"}, [2]string{p.GitHub, "Code"}); ok {
				head = append(head, links)
			}
			kids.add(f.View(Style{Row: true, SpaceBetween: true}, head...))
			if p.Description != "" {
				kids.add(f.Text(body.Merge(Style{Margin: Box{Top: 2}}), p.Description))
			}
			if len(p.Technologies) > 0 {
				pill := Style{FontSize: 8, Color: th.Accent, Background: th.SoftFill, Padding: XY(4, 2)}
				kids.add(f.View(Style{Margin: Box{Top: 4}}, tags(f, p.Technologies, pill, 4)))
			}
			items.add(f.View(block, kids...))
		}
		main.add(section("Projects", items...))
	}

	return f.Page(Style{Padding: All(30), FontSize: 10, LineHeight: 1.5, Color: "#333333"},
		f.View(Style{BorderBottom: 2, BorderColor: th.Accent, Padding: Box{Bottom: 10}, Margin: Box{Bottom: 20}}, header...),
		f.View(Style{Row: true},
			f.View(Style{Width: 0.32, Padding: Box{Right: 15}, BorderRight: 1, BorderColor: RuleColor}, sidebar...),
			f.View(Style{Width: 0.68, Padding: Box{Left: 15}}, main...),
		),
	)
}
