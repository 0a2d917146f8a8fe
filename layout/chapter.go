package layout

import (
	"fmt"

	"go.uber.org/zap"
)

// Stage is a step of chapter composition.
type Stage int

const (
	StageStart Stage = iota
	StagePageOpened
	StageTitleDrawn
	StageBodyDrawn
	StageTablesDrawn
	StageImagesDrawn
	StageDone
)

var stageNames = [...]string{"start", "page-opened", "title-drawn", "body-drawn", "tables-drawn", "images-drawn", "done"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Chapter renders single chapter: new page, title banner, body text, tables
// and images in that order. Chapter is validated before anything is drawn.
func (e *Engine) Chapter(ch *Chapter) (err error) {
	if err := ch.Validate(); err != nil {
		return err
	}

	stage := StageStart
	defer func() {
		if err != nil {
			err = fmt.Errorf("chapter %d after %s: %w", ch.Number, stage, err)
		}
	}()

	heading, err := e.encode(ch.Heading(), "chapter title")
	if err != nil {
		return err
	}

	e.canvas.BeginPage()
	first := e.d.PageNo()
	stage = StagePageOpened

	if err := e.titleBar(heading); err != nil {
		return err
	}
	stage = StageTitleDrawn

	if err := e.Text(ch.Body); err != nil {
		return err
	}
	stage = StageBodyDrawn

	for _, t := range ch.Tables {
		if err := e.Table(t.Block); err != nil {
			return fmt.Errorf("table %s: %w", t.ID, err)
		}
	}
	stage = StageTablesDrawn

	for _, img := range ch.Images {
		if err := e.Image(img.Block); err != nil {
			return fmt.Errorf("image %s: %w", img.ID, err)
		}
	}
	stage = StageImagesDrawn

	e.log.Debug("Chapter composed", zap.Int("number", ch.Number), zap.String("title", ch.Title),
		zap.Int("tables", len(ch.Tables)), zap.Int("images", len(ch.Images)),
		zap.Int("first_page", first), zap.Int("last_page", e.d.PageNo()))
	stage = StageDone
	return nil
}

func (e *Engine) titleBar(heading string) error {
	tb := e.opts.TitleBar
	e.setFont(tb.Font)
	e.setTextColor(tb.Color)
	e.setFillColor(tb.Fill)
	e.canvas.MoveTo(e.opts.Page.Left)
	e.d.Cell(e.opts.Page.ContentWidth(), tb.Height, heading, false, AlignLeft, true)
	e.canvas.Advance(tb.Height + tb.Gap)
	e.setTextColor(Black)
	return e.d.Err()
}
