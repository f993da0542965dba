package recognize

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// Recording holds the PCM signal submitted for recognition, after the
// ambient-noise calibration window has been measured and trimmed off.
type Recording struct {
	Samples     []int // 16-bit PCM samples
	SampleRate  int
	NumChannels int
	AmbientRMS  float64 // noise level measured over the calibration window
}

// Record decodes the WAV file at path, measures ambient noise over the
// leading calibration window, and returns the remaining signal.
func Record(path string, calibration time.Duration) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if buf == nil || buf.Format == nil || buf.Format.SampleRate == 0 {
		return nil, errors.New("audio file contains no decodable waveform")
	}

	lead := int(calibration.Seconds()*float64(buf.Format.SampleRate)) * buf.Format.NumChannels
	if lead > len(buf.Data) {
		lead = len(buf.Data)
	}

	return &Recording{
		Samples:     buf.Data[lead:],
		SampleRate:  buf.Format.SampleRate,
		NumChannels: buf.Format.NumChannels,
		AmbientRMS:  rms(buf.Data[:lead]),
	}, nil
}

// PCMBytes returns the recorded samples as 16-bit little-endian PCM
func (r *Recording) PCMBytes() []byte {
	out := make([]byte, len(r.Samples)*2)
	for i, s := range r.Samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(s)))
	}
	return out
}

// Duration reports the length of the recorded signal
func (r *Recording) Duration() time.Duration {
	if r.SampleRate == 0 || r.NumChannels == 0 {
		return 0
	}
	frames := len(r.Samples) / r.NumChannels
	return time.Duration(float64(frames) / float64(r.SampleRate) * float64(time.Second))
}

// rms computes the root-mean-square energy of samples, normalized to [0,1]
func rms(samples []int) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s) / math.MaxInt16
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}
