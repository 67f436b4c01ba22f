// Package forms applies editor patches to a résumé document. Every operation is a pure
// reducer: it returns a new document and never mutates the one it was given.
package forms

import "errors"

// Section names a patchable part of the document.
type Section string

const (
	SectionDocument       Section = "document"
	SectionPersonal       Section = "personal"
	SectionSocials        Section = "socials"
	SectionExperiences    Section = "experiences"
	SectionEducation      Section = "education"
	SectionProjects       Section = "projects"
	SectionSkills         Section = "skills"
	SectionLanguages      Section = "languages"
	SectionCertifications Section = "certifications"
)

// Op is the patch verb.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpSet    Op = "set"
)

// Patch describes one edit emitted by a section form.
//
// For list sections, Index addresses an entry. For skills and languages, an add carries the
// new value (a string, or {name, level}); other list adds insert a blank entry.
type Patch struct {
	Section Section `json:"section"`
	Op      Op      `json:"op"`
	Index   int     `json:"index,omitempty"`
	Field   string  `json:"field,omitempty"`
	Value   any     `json:"value,omitempty"`
}

var (
	ErrUnknownSection  = errors.New("unknown section")
	ErrUnknownField    = errors.New("unknown field")
	ErrUnsupportedOp   = errors.New("unsupported operation")
	ErrIndexOutOfRange = errors.New("index out of range")
)
