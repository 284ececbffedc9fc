// Package report renders the colour statistics behind a LUT as text.
package report

import (
	"fmt"
	"os"
	"sort"

	"github.com/flosch/pongo2"

	"github.com/mmuldo/colorlab/image"
	"github.com/mmuldo/colorlab/lab"
)

// DefaultTemplate is used when no template file is configured.
const DefaultTemplate = `{% autoescape off %}target: {{ report.Target }}
source: {{ report.Source }}

channel   target mean/std    source mean/std    gain
{% for c in report.Channels %}{{ c.Name|ljust:8 }}  {{ c.TargetMean|floatformat:2|rjust:7 }} {{ c.TargetStd|floatformat:2|rjust:7 }}    {{ c.SourceMean|floatformat:2|rjust:7 }} {{ c.SourceStd|floatformat:2|rjust:7 }}    {{ c.Gain|floatformat:3 }}
{% endfor %}{% if report.TargetColors %}
target colours
{% for s in report.TargetColors %}  {{ s.Hex }}  L={{ s.L|floatformat:1 }} a={{ s.A|floatformat:1 }} b={{ s.B|floatformat:1 }}  {{ s.Share|floatformat:1 }}%
{% endfor %}{% endif %}{% if report.SourceColors %}
source colours
{% for s in report.SourceColors %}  {{ s.Hex }}  L={{ s.L|floatformat:1 }} a={{ s.A|floatformat:1 }} b={{ s.B|floatformat:1 }}  {{ s.Share|floatformat:1 }}%
{% endfor %}{% endif %}{% endautoescape %}`

var channelNames = [3]string{"L", "a", "b"}

// Channel compares one Lab channel of the target and source images.
type Channel struct {
	Name       string
	TargetMean float64
	TargetStd  float64
	SourceMean float64
	SourceStd  float64
	// Gain is the factor the transfer scales this channel by.
	Gain float64
}

// Swatch represents an RGB color, its Lab equivalent, and the share of the
// image it takes up.
type Swatch struct {
	Hex     string
	RGB     lab.Color
	L, A, B float64
	Count   int
	Share   float64
}

type byDarkness []Swatch

func (s byDarkness) Len() int           { return len(s) }
func (s byDarkness) Less(i, j int) bool { return s[i].L < s[j].L }
func (s byDarkness) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Report is the data a template is rendered with, available as "report".
type Report struct {
	Target       string
	Source       string
	Channels     []Channel
	TargetColors []Swatch
	SourceColors []Swatch
}

// New builds a report comparing target and source statistics.
func New(target, source string, ts, ss lab.Stats) *Report {
	r := &Report{Target: target, Source: source}
	for i, n := range channelNames {
		r.Channels = append(r.Channels, Channel{
			Name:       n,
			TargetMean: ts.Mean[i],
			TargetStd:  ts.Std[i],
			SourceMean: ss.Mean[i],
			SourceStd:  ss.Std[i],
			Gain:       ts.Std[i] / (ss.Std[i] + lab.Epsilon),
		})
	}
	return r
}

// Swatches converts ranked colours to swatches ordered dark to light. total is
// the pixel count the shares are relative to.
func Swatches(ccl image.ColorCountList, total int) []Swatch {
	out := make([]Swatch, 0, len(ccl))
	for _, cc := range ccl {
		rgb := cc.RGB()
		l := lab.Decode(lab.RGBToLab(rgb))
		s := Swatch{
			Hex:   rgb2Hex(cc),
			RGB:   rgb,
			L:     l.L(),
			A:     l.A(),
			B:     l.B(),
			Count: cc.Count,
		}
		if total > 0 {
			s.Share = 100 * float64(cc.Count) / float64(total)
		}
		out = append(out, s)
	}
	sort.Stable(byDarkness(out))
	return out
}

// Render executes tpl, or DefaultTemplate when tpl is empty, with r.
func Render(r *Report, tpl string) (string, error) {
	if tpl == "" {
		tpl = DefaultTemplate
	}
	t, e := pongo2.FromString(tpl)
	if e != nil {
		return "", fmt.Errorf("parsing report template: %w", e)
	}
	o, e := t.Execute(pongo2.Context{"report": r})
	if e != nil {
		return "", fmt.Errorf("rendering report: %w", e)
	}
	return o, nil
}

// RenderFile renders r with the template stored at path.
func RenderFile(r *Report, path string) (string, error) {
	b, e := os.ReadFile(path)
	if e != nil {
		return "", e
	}
	return Render(r, string(b))
}

func rgb2Hex(cc image.ColorCount) string {
	return fmt.Sprintf("#%02x%02x%02x", cc.Color.R, cc.Color.G, cc.Color.B)
}
