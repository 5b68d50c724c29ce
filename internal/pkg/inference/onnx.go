// Package inference runs local ONNX vision models: a scene classifier,
// an SSD detector and a YOLO-style general detector.
package inference

import (
	"fmt"
	"sync"

	"github.com/ds124wfegd/visionpipe/internal/entity"
	ort "github.com/yalue/onnxruntime_go"
)

// ortEnv guards the process-wide runtime initialization.
var ortEnv struct {
	once sync.Once
	err  error
}

func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// runner is one forward pass from a flat float32 input to a flat float32 output.
type runner interface {
	Run(input []float32, shape []int64) ([]float32, []int64, error)
}

// Session holds a model with a single float32 input and output.
type Session struct {
	session    *ort.DynamicAdvancedSession
	inputName  string
	outputName string
}

func NewSession(libPath, modelPath string) (*Session, error) {
	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("onnx: failed to initialize runtime from %s: %w", libPath, err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to read model info: %w", err)
	}
	if len(inputs) != 1 || len(outputs) == 0 {
		return nil, fmt.Errorf("%w: want 1 input and at least 1 output, got %d and %d",
			entity.ErrModelOutput, len(inputs), len(outputs))
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(4)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session: %w", err)
	}

	return &Session{
		session:    session,
		inputName:  inputs[0].Name,
		outputName: outputs[0].Name,
	}, nil
}

// Run lets the runtime allocate the output since detector shapes are dynamic.
func (s *Session) Run(input []float32, shape []int64) ([]float32, []int64, error) {
	tIn, err := ort.NewTensor(ort.NewShape(shape...), input)
	if err != nil {
		return nil, nil, fmt.Errorf("onnx: failed to create %s tensor: %w", s.inputName, err)
	}
	defer tIn.Destroy()

	outputs := []ort.Value{nil}
	if err := s.session.Run([]ort.Value{tIn}, outputs); err != nil {
		return nil, nil, fmt.Errorf("onnx: inference failed: %w", err)
	}
	defer outputs[0].Destroy()

	tOut, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s is not a float32 tensor", entity.ErrModelOutput, s.outputName)
	}

	// copy out before the tensor is destroyed
	src := tOut.GetData()
	data := make([]float32, len(src))
	copy(data, src)

	outShape := make([]int64, len(tOut.GetShape()))
	copy(outShape, tOut.GetShape())
	return data, outShape, nil
}

func (s *Session) Close() error {
	return s.session.Destroy()
}
