package drawer

import (
	"github.com/askiada/go-textpipeline/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing pipelines.
type Drawer interface {
	// AddStep adds a step to the drawing. Disabled steps are drawn dashed.
	AddStep(stepName string, disabled bool) error
	// AddLink adds a link between parent and children steps.
	AddLink(parentStepName, childrenStepName string) error
	// AddMeasure labels steps and links with the durations of measure.
	AddMeasure(measure measure.Measure) error
	// Draw writes the drawing.
	Draw() error
}
