package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/meihua/internal/logging"
	"github.com/aretw0/meihua/pkg/domain"
	"golang.org/x/text/width"
)

// ErrInvalidMode is returned when the mode answer is neither 1 nor 2.
var ErrInvalidMode = errors.New("mode must be 1 or 2")

// Caster is the part of the engine an interactive session drives.
type Caster interface {
	CastThree(ctx context.Context, n1, n2, n3 int) (*domain.Reading, error)
	CastCalendar(ctx context.Context, yearBranch domain.Branch, month, day int, hourBranch domain.Branch) (*domain.Reading, error)
}

// Session runs the prompt flow of `meihua run`: choose a mode, answer its
// questions, get the report. With Loop set it keeps asking until q or EOF.
type Session struct {
	Engine Caster
	In     io.Reader
	Out    io.Writer
	Writer *Writer
	Loop   bool
	Logger *slog.Logger

	lines <-chan line
}

type line struct {
	text string
	err  error
}

// Run executes the session until done, interrupted or failed.
func (s *Session) Run(ctx context.Context) error {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.Writer == nil {
		s.Writer = &Writer{Out: s.Out, Format: FormatText}
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.lines = readLines(ctx, s.In)

	fmt.Fprintln(s.Out, "梅花易数·寻物快速查询")
	fmt.Fprintln(s.Out, "模式1：三数起卦（n1 n2 n3）")
	fmt.Fprintln(s.Out, "模式2：农历年月日时起卦（年支 月 日 时支）")

	for {
		err := s.once(ctx)
		switch {
		case err == nil:
		case IsInterrupted(err):
			return nil
		case errors.Is(err, ErrInvalidMode):
			fmt.Fprintln(s.Out, "模式输入错误，只能是1或2。")
			if !s.Loop {
				return nil
			}
		default:
			fmt.Fprintf(s.Out, "输入错误：%v\n", err)
			if !s.Loop {
				return err
			}
		}
		if !s.Loop {
			return nil
		}
		fmt.Fprintln(s.Out)
	}
}

func (s *Session) once(ctx context.Context) error {
	mode, err := s.ask(ctx, "请选择模式(1/2，q退出)：")
	if err != nil {
		return err
	}

	var r *domain.Reading
	switch width.Narrow.String(mode) {
	case "1":
		r, err = s.castThree(ctx)
	case "2":
		r, err = s.castCalendar(ctx)
	case "q", "quit", "exit":
		return io.EOF
	default:
		return ErrInvalidMode
	}
	if err != nil {
		return err
	}

	s.Logger.Info("Reading cast", "id", r.ID, "main", r.Main.Name)
	fmt.Fprintln(s.Out)
	return s.Writer.WriteReading(r)
}

func (s *Session) castThree(ctx context.Context) (*domain.Reading, error) {
	n1, err := s.askNumber(ctx, "输入第1数（上卦）：", "n1")
	if err != nil {
		return nil, err
	}
	n2, err := s.askNumber(ctx, "输入第2数（下卦）：", "n2")
	if err != nil {
		return nil, err
	}
	n3, err := s.askNumber(ctx, "输入第3数（动爻）：", "n3")
	if err != nil {
		return nil, err
	}
	return s.Engine.CastThree(ctx, n1, n2, n3)
}

func (s *Session) castCalendar(ctx context.Context) (*domain.Reading, error) {
	yb, err := s.askBranch(ctx, "输入年支（如‘巳’或数字6）：")
	if err != nil {
		return nil, err
	}
	month, err := s.askNumber(ctx, "输入农历月（1-12）：", "month")
	if err != nil {
		return nil, err
	}
	day, err := s.askNumber(ctx, "输入农历日（1-30）：", "day")
	if err != nil {
		return nil, err
	}
	hb, err := s.askBranch(ctx, "输入时支（如‘未’或数字8）：")
	if err != nil {
		return nil, err
	}
	return s.Engine.CastCalendar(ctx, yb, month, day, hb)
}

func (s *Session) askNumber(ctx context.Context, prompt, field string) (int, error) {
	answer, err := s.ask(ctx, prompt)
	if err != nil {
		return 0, err
	}
	return domain.ParseNumber(field, answer)
}

func (s *Session) askBranch(ctx context.Context, prompt string) (domain.Branch, error) {
	answer, err := s.ask(ctx, prompt)
	if err != nil {
		return 0, err
	}
	return domain.ParseBranch(answer)
}

// ask prints prompt and waits for one sanitized line.
func (s *Session) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(s.Out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return SanitizeInput(l.text)
	}
}

// readLines feeds lines from r until EOF or ctx is done. Reading happens on its
// own goroutine so a blocked terminal read never holds up cancellation.
func readLines(ctx context.Context, r io.Reader) <-chan line {
	ch := make(chan line)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- line{text: sc.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case ch <- line{err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return ch
}
