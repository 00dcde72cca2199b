package samas

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// ModelStatus records whether the optional classifier artifact could be loaded.
type ModelStatus struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func (s ModelStatus) String() string {
	if s.Available {
		return "available"
	}
	if s.Reason == "" {
		return "unavailable"
	}
	return "unavailable: " + s.Reason
}

// Model holds the classifier session and its tokenizer. It is loaded at startup so
// that a broken artifact is reported early, but it takes no part in annotation.
type Model struct {
	path    string
	inputs  []string
	outputs []string
	session *ort.DynamicAdvancedSession
	tok     *tokenizer.Tokenizer
	envRef  bool
}

// The ORT environment is process wide. Every loaded model holds a reference and the
// environment is destroyed when the last one is closed, so models may be replaced
// while an older one is still open.
var (
	ortMu    sync.Mutex
	ortRefs  int
	ortOwned bool

	ortIsInitialized = ort.IsInitialized
	ortDestroy       = ort.DestroyEnvironment
	ortInit          = func(dll string) error {
		if dll != "" {
			ort.SetSharedLibraryPath(dll)
		}
		return ort.InitializeEnvironment()
	}
)

// acquireEnv must be called with ortMu held.
func acquireEnv(dll string) error {
	if ortRefs == 0 && !ortIsInitialized() {
		if err := ortInit(dll); err != nil {
			return fmt.Errorf("init onnxruntime: %w", err)
		}
		ortOwned = true
	}
	ortRefs++
	return nil
}

// releaseEnv must be called with ortMu held.
func releaseEnv() error {
	if ortRefs == 0 {
		return nil
	}
	ortRefs--
	if ortRefs > 0 || !ortOwned {
		return nil
	}
	ortOwned = false
	return ortDestroy()
}

// LoadModel opens the ONNX model described by cfg. An empty ModelPath returns
// ErrModelDisabled.
func LoadModel(cfg ModelConfig) (*Model, error) {
	path := strings.TrimSpace(cfg.ModelPath)
	if path == "" {
		return nil, ErrModelDisabled
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("model %s: %w", filepath.Base(path), err)
	}

	ortMu.Lock()
	defer ortMu.Unlock()

	m := &Model{path: path}
	if err := acquireEnv(cfg.OrtDLL); err != nil {
		return nil, err
	}
	m.envRef = true

	inputs, outputs, err := ort.GetInputOutputInfo(path)
	if err != nil {
		m.closeLocked()
		return nil, fmt.Errorf("inspect model: %w", err)
	}
	for _, in := range inputs {
		m.inputs = append(m.inputs, in.Name)
	}
	for _, out := range outputs {
		m.outputs = append(m.outputs, out.Name)
	}
	if len(m.inputs) == 0 || len(m.outputs) == 0 {
		m.closeLocked()
		return nil, errors.New("model declares no inputs or outputs")
	}

	session, err := ort.NewDynamicAdvancedSession(path, m.inputs, m.outputs, nil)
	if err != nil {
		m.closeLocked()
		return nil, fmt.Errorf("create session: %w", err)
	}
	m.session = session

	if tp := strings.TrimSpace(cfg.TokenizerPath); tp != "" {
		tk, err := pretrained.FromFile(tp)
		if err != nil {
			m.closeLocked()
			return nil, fmt.Errorf("load tokenizer: %w", err)
		}
		m.tok = tk
	}
	return m, nil
}

// Describe returns a one line summary of the loaded artifact.
func (m *Model) Describe() string {
	if m == nil {
		return ""
	}
	desc := fmt.Sprintf("%s (inputs: %s; outputs: %s)", filepath.Base(m.path),
		strings.Join(m.inputs, ","), strings.Join(m.outputs, ","))
	if m.tok != nil {
		desc += fmt.Sprintf(", vocab %d", m.tok.GetVocabSize(true))
	}
	return desc
}

// Close releases the session and its reference on the ORT environment.
func (m *Model) Close() error {
	if m == nil {
		return nil
	}
	ortMu.Lock()
	defer ortMu.Unlock()
	return m.closeLocked()
}

func (m *Model) closeLocked() error {
	var errs []error
	if m.session != nil {
		errs = append(errs, m.session.Destroy())
		m.session = nil
	}
	if m.envRef {
		errs = append(errs, releaseEnv())
		m.envRef = false
	}
	m.tok = nil
	return errors.Join(errs...)
}
