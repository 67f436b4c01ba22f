package render

import "curriculum-backend/resume/viewmodel"

// professional: accent bar across the top, a wide left column for the narrative sections and
// a right column with a photo placeholder and the short lists.
func professional[N any](f Factory[N], vm *viewmodel.Resume, th Theme) N {
	body := Style{FontSize: 9, Color: InkColor}
	jobTitle := Style{FontSize: 10, Bold: true, Color: InkColor}
	company := Style{FontSize: 9, Bold: true, Color: InkColor, Margin: Box{Bottom: 2}}
	label := Style{FontSize: 9, Bold: true, Color: InkColor}
	link := Style{FontSize: 9, Color: InkColor}

	heading := func(text string, size float64) N {
		return f.View(Style{Row: true, BorderBottom: 1, BorderColor: InkColor, Padding: Box{Bottom: 2}, Margin: Box{Bottom: 8}},
			f.Text(Style{FontSize: size, Bold: true, Uppercase: true, Background: th.SoftFill, Padding: XY(4, 2)}, text),
		)
	}
	mainSection := func(text string, kids ...N) N {
		return f.View(Style{Margin: Box{Bottom: 15}}, append([]N{heading(text, 11)}, kids...)...)
	}
	sideSection := func(text string, kids ...N) N {
		return f.View(Style{Margin: Box{Bottom: 20}}, append([]N{heading(text, 10)}, kids...)...)
	}
	bulletItem := func(kids ...N) N {
		return f.View(Style{Row: true, Margin: Box{Bottom: 2}}, append([]N{f.Text(Style{FontSize: 9, Padding: Box{Right: 4}}, bulletGlyph)}, kids...)...)
	}

	var left nodes[N]
	left.add(f.Text(Style{
		FontSize: 22, Bold: true, Uppercase: true, Color: InkColor,
		BorderBottom: 2, BorderColor: InkColor, Padding: Box{Bottom: 5}, Margin: Box{Bottom: 10},
	}, vm.ProfileInfo.FullName))
	if vm.ProfileInfo.Designation != "" {
		left.add(f.Text(Style{FontSize: 11, Uppercase: true, Color: th.Accent, Margin: Box{Bottom: 10}}, vm.ProfileInfo.Designation))
	}

	if vm.ProfileInfo.Summary != "" {
		left.add(mainSection("Professional Summary", f.Text(body, vm.ProfileInfo.Summary)))
	}

	if len(vm.WorkExperience) > 0 {
		var items nodes[N]
		for _, exp := range vm.WorkExperience {
			line := exp.Title
			if r := DateRange(exp.StartDate, exp.EndDate, " – "); r != "" {
				line += ", " + r
			}
			var kids nodes[N]
			kids.add(f.Text(jobTitle, line), f.Text(company, joinNonEmpty(" - ", exp.Company, exp.Location)))
			if bullets := bulletList(f, exp.Description, Style{FontSize: 10, Padding: Box{Left: 5, Right: 5}}, body); len(bullets) > 0 {
				kids.add(f.View(Style{Margin: Box{Top: 2}}, bullets...))
			}
			items.add(f.View(Style{Margin: Box{Bottom: 10}}, kids...))
		}
		left.add(mainSection("Experience", items...))
	}

	if len(vm.Education) > 0 {
		var items nodes[N]
		for _, ed := range vm.Education {
			line := ed.Degree
			if ed.EndDate != "" {
				line += ", " + FormatYear(ed.EndDate)
			}
			var kids nodes[N]
			kids.add(f.Text(jobTitle, line), f.Text(company, ed.Institution))
			if ed.GPA != "" {
				kids.add(f.Text(body, "GPA: "+ed.GPA))
			}
			items.add(f.View(Style{Margin: Box{Bottom: 6}}, kids...))
		}
		left.add(mainSection("Education", items...))
	}

	if len(vm.Projects) > 0 {
		var items nodes[N]
		for _, p := range vm.Projects {
			var kids nodes[N]
			kids.add(f.Text(jobTitle, p.Title))
			if links, ok := linkRow(f, Style{FontSize: 8, Color: th.Accent}, 5,
				[2]string{p.LiveDemo, "Live Demo"}, [2]string{p.GitHub, "GitHub"}); ok {
				kids.add(links)
			}
			if p.Description != "" {
				kids.add(f.Text(body, p.Description))
			}
			if len(p.Technologies) > 0 {
				kids.add(tags(f, p.Technologies, Style{FontSize: 8, Color: th.Accent, Background: th.TagFill, Padding: XY(3, 1)}, 3))
			}
			items.add(f.View(Style{Margin: Box{Bottom: 6}}, kids...))
		}
		left.add(mainSection("Projects", items...))
	}

	var right nodes[N]
	right.add(f.View(Style{Width: 0.6, Height: 100, Background: RuleColor, Margin: Box{Bottom: 20}, Padding: Box{Top: 40}},
		f.Text(Style{FontSize: 8, Align: AlignCenter, Color: "#9ca3af"}, "PHOTO"),
	))

	c := vm.ContactInfo
	var contact nodes[N]
	item := func(name string, value N) {
		contact.add(f.View(Style{Margin: Box{Bottom: 4}}, f.Text(label, name), value))
	}
	if c.Location != "" {
		item("Address:", f.Text(body, c.Location))
	}
	if c.Phone != "" {
		item("Phone:", f.Text(body, c.Phone))
	}
	if c.Email != "" {
		item("Email:", f.Link(link, mailto(c.Email), c.Email))
	}
	if c.LinkedIn != "" {
		item("LinkedIn:", f.Link(link, c.LinkedIn, "LinkedIn Profile"))
	}
	if c.GitHub != "" {
		item("GitHub:", f.Link(link, c.GitHub, "GitHub Profile"))
	}
	if c.Website != "" {
		item("Portfolio:", f.Link(link, c.Website, "Portfolio Link"))
	}
	if len(contact) > 0 {
		right.add(sideSection("Contact", contact...))
	}

	if len(vm.Skills) > 0 {
		var items nodes[N]
		for _, s := range vm.Skills {
			items.add(bulletItem(f.Text(body.Merge(Style{Grow: true}), s.Name)))
		}
		right.add(sideSection("Core Qualifications", items...))
	}

	if len(vm.Languages) > 0 {
		var items nodes[N]
		for _, l := range vm.Languages {
			text := l.Name
			if l.Level != "" {
				text += ": " + l.Level
			}
			items.add(bulletItem(f.Text(body.Merge(Style{Grow: true}), text)))
		}
		right.add(sideSection("Languages", items...))
	}

	if len(vm.Certifications) > 0 {
		var items nodes[N]
		for _, cert := range vm.Certifications {
			text := cert.Name
			if cert.IssueDate != "" {
				text += " (" + FormatYearMonth(cert.IssueDate) + ")"
			}
			items.add(bulletItem(f.Text(body.Merge(Style{Grow: true}), text)))
		}
		right.add(sideSection("Additional Info", items...))
	}

	return f.Page(Style{FontSize: 9, LineHeight: 1.4, Color: InkColor, Padding: Box{Bottom: 30}},
		f.View(Style{Height: 15, Background: th.Accent, Margin: Box{Bottom: 25}}),
		f.View(Style{Row: true, Padding: XY(30, 0)},
			f.View(Style{Width: 0.65, Padding: Box{Right: 20}}, left...),
			f.View(Style{Width: 0.35}, right...),
		),
	)
}
