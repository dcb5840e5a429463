package checklist

import "errors"

// Framework is a compliance standard a question belongs to (PCI, GDPR, ...).
type Framework string

const (
	FrameworkPCI     Framework = "PCI"
	FrameworkGDPR    Framework = "GDPR"
	FrameworkInfosec Framework = "Infosec"
	FrameworkCMMI    Framework = "CMMI"
	FrameworkITSM    Framework = "ITSM"
	FrameworkGitHub  Framework = "GitHub"
	FrameworkCustom  Framework = "Custom"
)

// Schedulable lists the frameworks a user can pick when scheduling a run.
var Schedulable = []Framework{FrameworkPCI, FrameworkGDPR, FrameworkInfosec, FrameworkCMMI, FrameworkITSM}

// Source tells where the evidence for a question comes from.
type Source string

const (
	SourceEvidencePool   Source = "evidence-pool"
	SourceCodeRepository Source = "code-repository"
)

// CustomSubject is the subject assigned to questions added during a run.
const CustomSubject = "Custom Questions"

var (
	ErrDuplicateQuestion = errors.New("duplicate checklist question")
	ErrInvalidWeight     = errors.New("checklist weight must be positive")
	ErrEmptyQuestion     = errors.New("checklist question is empty")
	ErrUnknownQuestion   = errors.New("question not in checklist")
)

// Item is one audit question. Question text is the natural key.
type Item struct {
	Subject  string      `json:"subject" yaml:"subject"`
	Question string      `json:"question" yaml:"question"`
	Keywords []string    `json:"keywords" yaml:"keywords"`
	Weight   int         `json:"weight" yaml:"weight"`
	Tags     []Framework `json:"tags" yaml:"tags"`
	Source   Source      `json:"source,omitempty" yaml:"source,omitempty"`
}

// HasTag reports whether the item applies to framework f.
func (i Item) HasTag(f Framework) bool {
	for _, t := range i.Tags {
		if t == f {
			return true
		}
	}
	return false
}

// InScope reports whether any of the item's tags is in scope.
func (i Item) InScope(scope []Framework) bool {
	for _, f := range scope {
		if i.HasTag(f) {
			return true
		}
	}
	return false
}

// EvidenceSource returns the item's source, defaulting to the evidence pool.
func (i Item) EvidenceSource() Source {
	if i.Source == "" {
		return SourceEvidencePool
	}
	return i.Source
}

func (i Item) clone() Item {
	c := i
	c.Keywords = append([]string(nil), i.Keywords...)
	c.Tags = append([]Framework(nil), i.Tags...)
	return c
}
