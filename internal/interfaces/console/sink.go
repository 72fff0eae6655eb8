package console

import (
	"fmt"
	"io"
	"os"
	"time"

	"defilens/internal/application/port"
)

type Sink struct {
	out io.Writer
}

func NewSink() port.Sink { return &Sink{out: os.Stdout} }

func NewSinkWriter(w io.Writer) port.Sink { return &Sink{out: w} }

func (s *Sink) WriteHeader(title string) error {
	_, err := fmt.Fprintf(s.out, "\n%s\n", colorize("== "+title+" ==", ansiDim))
	return err
}

func (s *Sink) WriteReport(ts time.Time, line string) error {
	_, err := fmt.Fprintf(s.out, "%s %s\n", ts.Format("2006-01-02 15:04:05"), line)
	return err
}

func (s *Sink) NewLine() error {
	_, err := fmt.Fprint(s.out, "\n")
	return err
}
