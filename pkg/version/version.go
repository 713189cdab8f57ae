// Package version orders dotted numeric version strings and classifies a
// remote version against a locally stored one.
package version

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/storysync/pkg/errors"
	goversion "github.com/hashicorp/go-version"
)

// Ordering is the result of comparing two versions.
type Ordering int

// Comparison results.
const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "equal"
	}
}

// Classification describes how a remote version relates to the local one.
type Classification string

// Classification values.
const (
	New       Classification = "new"
	Same      Classification = "same"
	Upgrade   Classification = "upgrade"
	Downgrade Classification = "downgrade"
)

// Normalize strips a leading "v" from a release tag.
func Normalize(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "v")
}

// Compare orders two dotted numeric version strings segment by segment.
// Missing trailing segments are treated as zero, so "1.2" equals "1.2.0".
func Compare(a, b string) (Ordering, error) {
	va, err := goversion.NewVersion(Normalize(a))
	if err != nil {
		return Equal, fmt.Errorf("%w: %q", errors.ErrParse, a)
	}
	vb, err := goversion.NewVersion(Normalize(b))
	if err != nil {
		return Equal, fmt.Errorf("%w: %q", errors.ErrParse, b)
	}
	switch c := va.Compare(vb); {
	case c < 0:
		return Less, nil
	case c > 0:
		return Greater, nil
	default:
		return Equal, nil
	}
}

// Classify reports how a freshly fetched remote version relates to the locally
// stored one. An empty local version means the repository is new.
func Classify(local, remote string) (Classification, error) {
	if local == "" {
		return New, nil
	}
	ord, err := Compare(remote, local)
	if err != nil {
		return Same, err
	}
	switch ord {
	case Greater:
		return Upgrade, nil
	case Less:
		return Downgrade, nil
	default:
		return Same, nil
	}
}
