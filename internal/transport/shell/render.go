package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kailas-cloud/assessrec/internal/domain/constraint"
	"github.com/kailas-cloud/assessrec/internal/domain/recommend/result"
	recommenduc "github.com/kailas-cloud/assessrec/internal/usecase/recommend"
)

// NoMatchesMessage is printed when the filters leave nothing to rank.
const NoMatchesMessage = "No assessments match the filters."

const notSpecified = "not specified"

// Render writes the found URLs, the extracted requirements and the result table.
func Render(w io.Writer, out recommenduc.Outcome) error {
	var b strings.Builder

	if len(out.URLs) > 0 {
		b.WriteString("Found URLs:\n")
		for _, u := range out.URLs {
			fmt.Fprintf(&b, "  - %s\n", u)
		}
		b.WriteString("\n")
	}

	writeRequirements(&b, out.Constraints)
	b.WriteString("\n")

	if len(out.Items) == 0 {
		b.WriteString(NoMatchesMessage + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	return writeTable(w, out.Items)
}

func writeRequirements(b *strings.Builder, c constraint.Constraints) {
	b.WriteString("Extracted Requirements:\n")

	maxDuration := notSpecified
	if c.DurationMax != nil {
		maxDuration = strconv.Itoa(*c.DurationMax) + " min"
	}
	fmt.Fprintf(b, "  Max duration: %s\n", maxDuration)

	skills := notSpecified
	if c.HasSkills() {
		skills = strings.Join(c.Skills, ", ")
	}
	fmt.Fprintf(b, "  Skills:       %s\n", skills)
	fmt.Fprintf(b, "  Remote:       %s\n", yesNo(c.RemoteRequired))
	fmt.Fprintf(b, "  Adaptive:     %s\n", yesNo(c.AdaptiveRequired))
}

func yesNo(v *bool) string {
	switch {
	case v == nil:
		return notSpecified
	case *v:
		return "required"
	default:
		return "no"
	}
}

func writeTable(w io.Writer, items []result.Item) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tREMOTE\tADAPTIVE\tDURATION\tTYPE\tSCORE\tURL")
	for i, it := range items {
		score := "-"
		if it.Similarity != nil {
			score = strconv.FormatFloat(*it.Similarity, 'f', 3, 64)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			i+1, it.Name, it.RemoteSupport, it.AdaptiveSupport, it.Duration, it.TestTypeMapped, score, it.URL)
	}
	return tw.Flush()
}
