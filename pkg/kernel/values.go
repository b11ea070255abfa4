package kernel

import "strings"

type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }

// IsValid performs a cheap shape check; full validation belongs to the
// API boundary.
func (e Email) IsValid() bool {
	s := string(e)
	at := strings.Index(s, "@")
	return at > 0 && strings.Contains(s[at:], ".")
}

type Phone string

func (p Phone) String() string { return string(p) }
func (p Phone) IsEmpty() bool  { return string(p) == "" }

type FirstName string

func (f FirstName) String() string { return string(f) }

type LastName string

func (l LastName) String() string { return string(l) }

type Location string

func (l Location) String() string { return string(l) }
func (l Location) IsEmpty() bool  { return string(l) == "" }

type JobTitle string

type JobDescription string

type JobRequirement string

type ResumeEmbedding []float32

type ResumeSummary string

type BucketURL string
