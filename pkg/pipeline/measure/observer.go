package measure

import (
	"time"

	"github.com/askiada/go-textpipeline/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	return nil
}

func (pm *pipelineMeasure) BeforeRun(pipeline string, steps []*model.StepInfo) error {
	pm.AddMetric(Key(pipeline, ""))

	for _, step := range steps {
		pm.AddMetric(Key(pipeline, step.Label()))
	}

	return nil
}

func (pm *pipelineMeasure) OnStepOutput(step *model.StepInfo, elapsed time.Duration) error {
	pm.AddMetric(Key(step.Pipeline, step.Label())).AddDuration(elapsed)

	return nil
}

func (pm *pipelineMeasure) AfterRun(pipeline string, total time.Duration, err error) error {
	mt := pm.AddMetric(Key(pipeline, ""))
	mt.AddDuration(total)
	mt.SetTotalDuration(total)

	if err != nil {
		mt.AddFailure()
	}

	return nil
}

// PipelineMeasure returns an observer recording run and step durations into measure.
func PipelineMeasure(measure Measure) model.Observer {
	return &pipelineMeasure{measure}
}
