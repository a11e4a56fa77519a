package drawer

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-textpipeline/pkg/pipeline/measure"
)

// DOTDrawer writes the pipelines graph in the DOT language.
type DOTDrawer struct {
	graph      graph.Graph[string, string]
	wrt        io.Writer
	attributes map[string]string
}

// DOTOption configures a DOTDrawer.
type DOTOption func(d *DOTDrawer)

// GraphAttribute sets a graph-level DOT attribute such as rankdir.
func GraphAttribute(key, value string) DOTOption {
	return func(d *DOTDrawer) {
		d.attributes[key] = value
	}
}

// NewDOTDrawer creates a new DOT drawer writing to wrt.
func NewDOTDrawer(wrt io.Writer, opts ...DOTOption) *DOTDrawer {
	d := &DOTDrawer{
		wrt:        wrt,
		graph:      graph.New(graph.StringHash, graph.Directed()),
		attributes: make(map[string]string),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// AddStep adds a step to the pipeline graph.
func (d *DOTDrawer) AddStep(name string, disabled bool) error {
	opts := []func(*graph.VertexProperties){}
	if disabled {
		opts = append(opts, graph.VertexAttribute("style", "dashed"))
	}

	err := d.graph.AddVertex(name, opts...)
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}

	return nil
}

// AddLink adds a link between parent and children steps.
func (d *DOTDrawer) AddLink(parentName, childrenName string) error {
	err := d.graph.AddEdge(parentName, childrenName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childrenName)
	}

	return nil
}

// Draw writes the graph.
func (d *DOTDrawer) Draw() error {
	err := dot(d.graph, d.wrt, d.attributes)
	if err != nil {
		return errors.Wrap(err, "unable to write dot graph")
	}

	return nil
}

const maxRGB = 240

// AddMeasure labels every measured step with its average duration and colours the link
// leading to it from blue, the fastest, to red, the slowest.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	predecessors, err := d.graph.PredecessorMap()
	if err != nil {
		return errors.Wrap(err, "unable to get predecessors")
	}

	metrics := msr.AllMetrics()

	var minValue, maxValue time.Duration

	first := true

	for name, mt := range metrics {
		if len(predecessors[name]) == 0 {
			continue
		}

		avg := mt.AVGDuration()
		if first || avg < minValue {
			minValue = avg
		}

		if first || avg > maxValue {
			maxValue = avg
		}

		first = false
	}

	for name, mt := range metrics {
		_, properties, err := d.graph.VertexWithProperties(name)
		if err != nil {
			continue
		}

		avg := mt.AVGDuration()
		label := avg.String()

		if failures := mt.Failures(); failures > 0 {
			label += fmt.Sprintf(", failed: %d/%d", failures, mt.Total())
		}

		properties.Attributes["xlabel"] = label

		if len(predecessors[name]) == 0 {
			continue
		}

		colour, err := durationColour(avg, minValue, maxValue)
		if err != nil {
			return err
		}

		for parent := range predecessors[name] {
			err := d.graph.UpdateEdge(parent, name,
				graph.EdgeAttribute("label", avg.String()),
				graph.EdgeAttribute("fontcolor", "blue"),
				graph.EdgeAttribute("color", colour),
			)
			if err != nil {
				return errors.Wrap(err, "unable to update edge")
			}
		}
	}

	return nil
}

func durationColour(curr, minValue, maxValue time.Duration) (string, error) {
	fraction := 1.0
	if maxValue > minValue {
		fraction = float64(curr-minValue) / float64(maxValue-minValue)
	}

	red := maxRGB * fraction
	blue := maxRGB - red

	colour, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return colour.ToHEX().String(), nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{id $v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{id .Source}}" {{if .Target}}{{$.EdgeOperator}} "{{id .Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{id $v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{id $v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot(gra graph.Graph[string, string], wrt io.Writer, attributes map[string]string) error {
	desc, err := generateDOT(gra, attributes)
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(wrt, desc)
}

// generateDOT lists vertices and edges sorted by name so the output is stable.
func generateDOT(gra graph.Graph[string, string], attributes map[string]string) (description, error) {
	desc := description{
		GraphType:    "digraph",
		Attributes:   attributes,
		EdgeOperator: "->",
		Statements:   make([]statement, 0),
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	vertices := make([]string, 0, len(adjacencyMap))
	for vertex := range adjacencyMap {
		vertices = append(vertices, vertex)
	}

	sort.Strings(vertices)

	for _, vertex := range vertices {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		attributes := make(map[string]string, len(sourceProperties.Attributes))
		htmlAttributes := make(map[string]string)

		for k, v := range sourceProperties.Attributes {
			if k == "xlabel" {
				htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, html.EscapeString(vertex), html.EscapeString(v))

				continue
			}

			attributes[k] = v
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: attributes,
			HTMLAttributes:   htmlAttributes,
		})

		targets := make([]string, 0, len(adjacencyMap[vertex]))
		for target := range adjacencyMap[vertex] {
			targets = append(targets, target)
		}

		sort.Strings(targets)

		for _, target := range targets {
			edge := adjacencyMap[vertex][target]
			desc.Statements = append(desc.Statements, statement{
				Source:         vertex,
				Target:         target,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Funcs(template.FuncMap{"id": escapeID}).Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var idEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// escapeID makes s safe inside a double-quoted DOT ID.
func escapeID(s string) string {
	return idEscaper.Replace(s)
}

var _ Drawer = (*DOTDrawer)(nil)
