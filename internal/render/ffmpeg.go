package render

import (
	"context"
	"os/exec"
	"strconv"

	"atomizer/internal/domain"
)

// TranscodeJob is a single trim-and-filter invocation.
type TranscodeJob struct {
	Input    string
	Start    float64
	Duration float64
	Filter   string
	Preset   string
	Output   string
}

// Args returns the ffmpeg argument list for the job.
func (j TranscodeJob) Args() []string {
	return []string{
		"-ss", fmtSeconds(j.Start),
		"-i", j.Input,
		"-t", fmtSeconds(j.Duration),
		"-vf", j.Filter,
		"-preset", j.Preset,
		"-c:a", "copy",
		j.Output,
		"-y",
	}
}

type FFmpeg struct {
	bin string
}

func NewFFmpeg(path string) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{bin: path}
}

func (f *FFmpeg) Transcode(ctx context.Context, job TranscodeJob) error {
	cmd := exec.CommandContext(ctx, f.bin, job.Args()...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return &domain.RenderFailedError{Output: string(b), Err: err}
	}
	return nil
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
