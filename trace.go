package gibbs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/gibbs/codec"
	"github.com/hupe1980/gibbs/model"
)

// Snapshot is the state committed at the end of one sweep.
type Snapshot struct {
	// Sweep is the 1-based sweep index.
	Sweep int

	// Components holds the parameter draw for each cluster, indexed by
	// cluster id - 1.
	Components []model.Component

	// Weights is the mixture-weight draw.
	Weights model.Weights

	// Assignment is the cluster label of every observation.
	Assignment model.Assignment

	// Counts is the per-cluster member count, indexed by cluster id - 1.
	Counts []int

	// Entropies holds the per-observation assignment entropy. Nil unless
	// WithEntropyDiagnostics was set.
	Entropies []float64
}

// Trace is the ordered, append-only sequence of committed snapshots. It
// is owned by the Sampler during a run and read-only afterwards.
type Trace struct {
	snapshots []Snapshot
}

// Len returns the number of committed snapshots.
func (tr *Trace) Len() int { return len(tr.snapshots) }

// At returns the snapshot of sweep i+1.
func (tr *Trace) At(i int) Snapshot { return tr.snapshots[i] }

// Last returns the most recent snapshot, or false when the trace is
// empty.
func (tr *Trace) Last() (Snapshot, bool) {
	if len(tr.snapshots) == 0 {
		return Snapshot{}, false
	}
	return tr.snapshots[len(tr.snapshots)-1], true
}

func (tr *Trace) append(s Snapshot) {
	tr.snapshots = append(tr.snapshots, s)
}

// Compression names a trace-file compression scheme.
type Compression string

// Supported trace-file compression schemes.
const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionLZ4  Compression = "lz4"
)

var (
	// ErrBadTraceHeader is returned when decoding data that is not a
	// trace file.
	ErrBadTraceHeader = errors.New("bad trace header")

	traceMagic = [4]byte{'G', 'T', 'R', 'C'}
)

const traceVersion byte = 1

type encodeOptions struct {
	codec       codec.Codec
	compression Compression
}

// EncodeOption configures Trace.Encode.
type EncodeOption func(*encodeOptions)

// WithCodec selects the snapshot codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) EncodeOption {
	return func(o *encodeOptions) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression selects the payload compression. Defaults to
// CompressionNone.
func WithCompression(c Compression) EncodeOption {
	return func(o *encodeOptions) {
		o.compression = c
	}
}

// Encode writes the trace to w in a self-describing format: a fixed
// header recording the codec and compression names, followed by the
// encoded snapshots. The sampler core never writes traces on its own;
// encoding happens only when a caller asks for it.
func (tr *Trace) Encode(w io.Writer, optFns ...EncodeOption) error {
	o := encodeOptions{codec: codec.Default, compression: CompressionNone}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	if _, err := w.Write(traceMagic[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{traceVersion}); err != nil {
		return err
	}
	if err := writeString(w, o.codec.Name()); err != nil {
		return err
	}
	if err := writeString(w, string(o.compression)); err != nil {
		return err
	}

	payload, err := o.codec.Marshal(traceToWire(tr))
	if err != nil {
		return err
	}

	switch o.compression {
	case CompressionNone:
		_, err = w.Write(payload)
		return err
	case CompressionGzip:
		zw := gzip.NewWriter(w)
		if _, err := zw.Write(payload); err != nil {
			return err
		}
		return zw.Close()
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if _, err := zw.Write(payload); err != nil {
			return err
		}
		return zw.Close()
	default:
		return fmt.Errorf("unknown compression %q", o.compression)
	}
}

// DecodeTrace reads a trace previously written by Encode. The codec and
// compression are selected from the header, so no options are needed.
func DecodeTrace(r io.Reader) (*Trace, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadTraceHeader, err)
	}
	if magic != traceMagic {
		return nil, ErrBadTraceHeader
	}

	var version [1]byte
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadTraceHeader, err)
	}
	if version[0] != traceVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadTraceHeader, version[0])
	}

	codecName, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadTraceHeader, err)
	}
	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrBadTraceHeader, codecName)
	}

	compName, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadTraceHeader, err)
	}

	var payload []byte
	switch Compression(compName) {
	case CompressionNone:
		payload, err = io.ReadAll(r)
	case CompressionGzip:
		var zr *gzip.Reader
		zr, err = gzip.NewReader(r)
		if err == nil {
			payload, err = io.ReadAll(zr)
			if cerr := zr.Close(); err == nil {
				err = cerr
			}
		}
	case CompressionLZ4:
		payload, err = io.ReadAll(lz4.NewReader(r))
	default:
		return nil, fmt.Errorf("%w: unknown compression %q", ErrBadTraceHeader, compName)
	}
	if err != nil {
		return nil, err
	}

	var wire traceWire
	if err := c.Unmarshal(payload, &wire); err != nil {
		return nil, err
	}

	return traceFromWire(&wire)
}

func writeString(w io.Writer, s string) error {
	if len(s) > 255 {
		return fmt.Errorf("string too long for header: %d bytes", len(s))
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n [1]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return "", err
	}
	buf := make([]byte, n[0])
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// Wire representation. Components are encoded with an explicit type tag
// so decoding can rebuild the right concrete parameter type.

type traceWire struct {
	Snapshots []snapshotWire `json:"snapshots"`
}

type snapshotWire struct {
	Sweep      int             `json:"sweep"`
	Components []componentWire `json:"components"`
	Weights    []float64       `json:"weights"`
	Assignment []int           `json:"assignment"`
	Counts     []int           `json:"counts"`
	Entropies  []float64       `json:"entropies,omitempty"`
}

type componentWire struct {
	Type  string      `json:"type"`
	Probs []float64   `json:"probs,omitempty"`
	Mean  []float64   `json:"mean,omitempty"`
	Cov   [][]float64 `json:"cov,omitempty"`
}

func traceToWire(tr *Trace) *traceWire {
	out := &traceWire{Snapshots: make([]snapshotWire, 0, len(tr.snapshots))}
	for _, s := range tr.snapshots {
		sw := snapshotWire{
			Sweep:      s.Sweep,
			Components: make([]componentWire, len(s.Components)),
			Weights:    s.Weights,
			Assignment: s.Assignment,
			Counts:     s.Counts,
			Entropies:  s.Entropies,
		}
		for j, c := range s.Components {
			sw.Components[j] = componentToWire(c)
		}
		out.Snapshots = append(out.Snapshots, sw)
	}
	return out
}

func componentToWire(c model.Component) componentWire {
	switch v := c.(type) {
	case *model.BernoulliComponent:
		return componentWire{Type: "bernoulli", Probs: v.Probs()}
	case *model.GaussianComponent:
		d := v.Dim()
		cov := make([][]float64, d)
		for i := 0; i < d; i++ {
			cov[i] = make([]float64, d)
			for j := 0; j < d; j++ {
				cov[i][j] = v.Cov().At(i, j)
			}
		}
		return componentWire{Type: "gaussian", Mean: v.Mean(), Cov: cov}
	default:
		return componentWire{Type: fmt.Sprintf("unknown(%T)", c)}
	}
}

func traceFromWire(wire *traceWire) (*Trace, error) {
	tr := &Trace{snapshots: make([]Snapshot, 0, len(wire.Snapshots))}
	for _, sw := range wire.Snapshots {
		snap := Snapshot{
			Sweep:      sw.Sweep,
			Components: make([]model.Component, len(sw.Components)),
			Weights:    model.Weights(sw.Weights),
			Assignment: model.Assignment(sw.Assignment),
			Counts:     sw.Counts,
			Entropies:  sw.Entropies,
		}
		for j, cw := range sw.Components {
			c, err := componentFromWire(cw)
			if err != nil {
				return nil, fmt.Errorf("sweep %d, cluster %d: %w", sw.Sweep, j+1, err)
			}
			snap.Components[j] = c
		}
		tr.snapshots = append(tr.snapshots, snap)
	}
	return tr, nil
}

func componentFromWire(cw componentWire) (model.Component, error) {
	switch cw.Type {
	case "bernoulli":
		return model.NewBernoulliComponent(cw.Probs)
	case "gaussian":
		d := len(cw.Mean)
		if len(cw.Cov) != d {
			return nil, &model.ErrDimensionMismatch{Expected: d, Actual: len(cw.Cov)}
		}
		cov := mat.NewSymDense(d, nil)
		for i := 0; i < d; i++ {
			if len(cw.Cov[i]) != d {
				return nil, &model.ErrDimensionMismatch{Expected: d, Actual: len(cw.Cov[i])}
			}
			for j := i; j < d; j++ {
				cov.SetSym(i, j, cw.Cov[i][j])
			}
		}
		return model.NewGaussianComponent(cw.Mean, cov)
	default:
		return nil, fmt.Errorf("unknown component type %q", cw.Type)
	}
}
