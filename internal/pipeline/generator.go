package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/serialform/internal/doctree"
	"github.com/dgallion1/serialform/internal/logfields"
	"github.com/dgallion1/serialform/internal/metrics"
	"github.com/dgallion1/serialform/internal/model"
	"github.com/dgallion1/serialform/internal/serialform"
)

const DefaultMaxRetries = 3

// Generator drives page assembly for one documentation set. It is safe for
// concurrent use: every Generate call builds its own Page.
type Generator struct {
	writer *serialform.Writer
	set    *model.Set
	title  string

	log        *slog.Logger
	rec        metrics.Recorder
	maxRetries int
	backoff    func(attempt int) time.Duration
}

type Option func(*Generator)

func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) { g.log = log }
}

func WithRecorder(rec metrics.Recorder) Option {
	return func(g *Generator) { g.rec = rec }
}

func WithMaxRetries(n int) Option {
	return func(g *Generator) { g.maxRetries = n }
}

func WithBackoff(fn func(attempt int) time.Duration) Option {
	return func(g *Generator) { g.backoff = fn }
}

func NewGenerator(w *serialform.Writer, set *model.Set, title string, opts ...Option) *Generator {
	g := &Generator{
		writer:     w,
		set:        set,
		title:      title,
		log:        slog.Default(),
		rec:        metrics.NoopRecorder{},
		maxRetries: DefaultMaxRetries,
		backoff:    Backoff,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Writer exposes the page writer, e.g. for visibility queries.
func (g *Generator) Writer() *serialform.Writer { return g.writer }

// Set returns the documentation set the generator renders.
func (g *Generator) Set() *model.Set { return g.set }

// Generate assembles one page and hands it to pr. Any error aborts the page;
// nothing is printed unless assembly completed.
func (g *Generator) Generate(pr serialform.Printer) error {
	w := g.writer
	page := w.NewPage()
	if err := page.OpenHeader(g.title); err != nil {
		return err
	}

	summaries := w.OpenSummariesSection()
	for _, pkg := range g.set.Packages {
		if len(pkg.Classes) == 0 {
			continue
		}
		section, err := g.buildPackage(pkg)
		if err != nil {
			return err
		}
		w.AddPackageSerializedTree(summaries, section)
	}

	if err := page.AttachSerializedContent(summaries); err != nil {
		return err
	}
	if err := page.CloseFooter(); err != nil {
		return err
	}
	return page.HandOff(pr)
}

func (g *Generator) buildPackage(pkg *model.Package) (*doctree.Node, error) {
	w := g.writer
	section := w.OpenPackageSection()
	heading, err := w.BuildPackageHeading(pkg.Name)
	if err != nil {
		return nil, err
	}
	section.Append(heading)

	classes := w.OpenClassSection()
	for _, c := range pkg.Classes {
		li, err := g.buildClass(c)
		if err != nil {
			return nil, err
		}
		classes.Append(li)
	}
	return section.Append(classes), nil
}

func (g *Generator) buildClass(c *model.Class) (*doctree.Node, error) {
	w := g.writer
	li, err := w.BuildClassHeader(c)
	if err != nil {
		return nil, err
	}
	g.log.Debug("class header built",
		logfields.Package(c.Package),
		logfields.Class(c.Name),
		slog.Bool("visible", w.IsVisibleClass(c)))

	if c.SerialVersionUID != "" {
		label, err := w.SerialUIDLabel()
		if err != nil {
			return nil, err
		}
		dl := w.SerialUIDInfoHeader()
		w.AddSerialUID(dl, label, c.SerialVersionUID)
		li.Append(dl)
	}

	content := w.ClassContentHeader()
	for _, mw := range w.MemberWriters(c) {
		n, err := mw.Build()
		if err != nil {
			return nil, err
		}
		if n != nil {
			content.Append(n)
		}
	}
	if content.Len() > 0 {
		li.Append(content)
	}
	return li, nil
}

// Run generates the page, rebuilding it from scratch after retryable output
// failures. pr must tolerate being called once per attempt.
func (g *Generator) Run(ctx context.Context, pr serialform.Printer, format string) error {
	log := g.log.With(logfields.RenderID(uuid.NewString()), logfields.Format(format))
	start := time.Now()

	for attempt := 0; ; attempt++ {
		err := g.Generate(pr)
		if err == nil {
			d := time.Since(start)
			g.rec.ObservePageDuration(format, d)
			g.rec.IncPageOutcome(format, metrics.OutcomeSuccess)
			log.Info("page generated",
				logfields.Page(g.title),
				logfields.Attempt(attempt+1),
				logfields.DurationMS(float64(d.Microseconds())/1000))
			return nil
		}

		if !IsRetryable(err) || attempt >= g.maxRetries {
			g.rec.IncPageOutcome(format, metrics.OutcomeFailed)
			log.Error("page generation failed", logfields.Attempt(attempt+1), logfields.Error(err))
			return err
		}

		wait := g.backoff(attempt)
		g.rec.IncOutputRetry(format)
		log.Warn("document output failed, retrying",
			logfields.Attempt(attempt+1),
			slog.Duration("backoff", wait),
			logfields.Error(err))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			g.rec.IncPageOutcome(format, metrics.OutcomeFailed)
			return errors.Join(ctx.Err(), err)
		case <-timer.C:
		}
	}
}
