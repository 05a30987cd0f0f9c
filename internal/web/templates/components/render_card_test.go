package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeet1511/EliteZero/internal/model"
)

func render(t *testing.T, r model.RenderInstruction) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderCard(r).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestRenderCardShowsBoardAndDisabledControls(t *testing.T) {
	doc := render(t, model.RenderInstruction{
		SessionID: "s1",
		Title:     "Tic-Tac-Toe",
		Text:      "Your move\nX to play",
		Board:     []string{"X..", ".O.", "..."},
		Controls: [][]model.Control{{
			{Kind: model.ActionCell, Value: "0", Label: "1", Style: model.StylePrimary},
			{Kind: model.ActionCell, Value: "1", Label: "2", Style: model.StylePrimary},
		}},
	})

	card := doc.Find("article.render")
	require.Equal(t, 1, card.Length())
	assert.False(t, card.HasClass("final"))
	session, _ := card.Attr("data-session")
	assert.Equal(t, "s1", session)
	assert.Equal(t, "Tic-Tac-Toe", card.Find("h3").Text())
	assert.Equal(t, 2, card.Find("p").Length())
	assert.Equal(t, "X..\n.O.\n...", card.Find("pre.board").Text())

	buttons := card.Find("div.controls button.primary")
	require.Equal(t, 2, buttons.Length())
	buttons.Each(func(_ int, b *goquery.Selection) {
		_, disabled := b.Attr("disabled")
		assert.True(t, disabled)
	})
}

func TestRenderCardMarksFinalAndEscapes(t *testing.T) {
	doc := render(t, model.RenderInstruction{SessionID: "s2", Text: "<b>done</b>", Final: true})

	card := doc.Find("article")
	assert.True(t, card.HasClass("final"))
	assert.Equal(t, 0, card.Find("h3").Length())
	assert.Equal(t, 0, card.Find("b").Length())
	assert.Equal(t, "<b>done</b>", card.Find("p").Text())
}
