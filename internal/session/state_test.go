package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/skillpick/internal/catalog"
	"github.com/runger/skillpick/internal/match"
	"github.com/runger/skillpick/internal/usage"
)

func testCatalog() []catalog.Item {
	return []catalog.Item{
		{Name: "fizzy-cli", Namespace: "tools", Description: "Fizzy command line helpers"},
		{Name: "brave-search", Namespace: "search", Description: "Search the web with Brave"},
		{Name: "ad-creative", Namespace: "marketing", Description: "Draft ad copy"},
	}
}

func typeQuery(s *State, q string) {
	for _, r := range q {
		s.Handle(Char(r))
	}
}

func currentName(t *testing.T, s *State) string {
	t.Helper()
	it, ok := s.Current()
	require.True(t, ok, "no current item")
	return it.Name
}

func TestNew_CursorOnFirstEntry(t *testing.T) {
	s := New(testCatalog(), "", nil)

	require.NotEmpty(t, s.Display())
	assert.False(t, s.Display()[0].IsEntry(), "grouped list starts with a header")
	assert.Equal(t, 1, s.Cursor())
	assert.Equal(t, "ad-creative", currentName(t, s))
	assert.Equal(t, 3, s.Entries())
	assert.Empty(t, s.Query())
	assert.False(t, s.Done())
}

func TestNew_EmptyCatalog(t *testing.T) {
	s := New(nil, "", nil)

	assert.Empty(t, s.Display())
	assert.Equal(t, 0, s.Cursor())
	_, ok := s.Current()
	assert.False(t, ok)

	s.Handle(Next)
	s.Handle(Prev)
	assert.Equal(t, 0, s.Cursor())

	_, done := s.Handle(Confirm)
	assert.False(t, done, "confirm with no entry is a no-op")
	assert.False(t, s.Done())
}

func TestHandle_NextWrapsAndSkipsHeaders(t *testing.T) {
	s := New(testCatalog(), "", nil)

	var seen []string
	for range 4 {
		seen = append(seen, currentName(t, s))
		_, done := s.Handle(Next)
		require.False(t, done)
	}
	assert.Equal(t, []string{"ad-creative", "brave-search", "fizzy-cli", "ad-creative"}, seen)
}

func TestHandle_PrevWrapsAndSkipsHeaders(t *testing.T) {
	s := New(testCatalog(), "", nil)

	s.Handle(Prev)
	assert.Equal(t, "fizzy-cli", currentName(t, s))
	s.Handle(Prev)
	assert.Equal(t, "brave-search", currentName(t, s))
	s.Handle(Prev)
	assert.Equal(t, "ad-creative", currentName(t, s))
}

func TestHandle_CursorAlwaysOnEntry(t *testing.T) {
	s := New(testCatalog(), "", []usage.Record{{Name: "fizzy-cli", Count: 1}})

	inputs := []Input{Next, Next, Prev, Char('s'), Next, Erase, Prev, Prev, Next, Char('x'), Erase, Erase}
	for _, in := range inputs {
		s.Handle(in)
		if s.Entries() > 0 {
			assert.True(t, s.Display()[s.Cursor()].IsEntry(), "after %s", in.Kind)
		}
	}
}

func TestHandle_TypingFiltersAndResetsCursor(t *testing.T) {
	s := New(testCatalog(), "", nil)
	s.Handle(Next)
	s.Handle(Next)

	typeQuery(s, "search")

	assert.Equal(t, "search", s.Query())
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, []match.DisplayItem{match.Entry(testCatalog()[1], "search")}, s.Display())
}

func TestHandle_EraseRestoresGroupedList(t *testing.T) {
	s := New(testCatalog(), "", nil)
	grouped := s.Display()

	typeQuery(s, "ad")
	require.Equal(t, 1, s.Entries())

	s.Handle(Erase)
	assert.Equal(t, "a", s.Query())
	s.Handle(Erase)
	assert.Empty(t, s.Query())
	assert.Equal(t, grouped, s.Display())
	assert.Equal(t, 1, s.Cursor())

	s.Handle(Erase)
	assert.Empty(t, s.Query(), "erase on empty query is a no-op")
}

func TestHandle_EraseDropsWholeRune(t *testing.T) {
	s := New(testCatalog(), "", nil)
	typeQuery(s, "añ")
	s.Handle(Erase)
	assert.Equal(t, "a", s.Query())
}

func TestHandle_NoMatches(t *testing.T) {
	s := New(testCatalog(), "", nil)
	typeQuery(s, "zzz")

	assert.Empty(t, s.Display())
	assert.Equal(t, 0, s.Entries())
	_, done := s.Handle(Confirm)
	assert.False(t, done)
}

func TestHandle_ConfirmSelects(t *testing.T) {
	s := New(testCatalog(), "", nil)
	typeQuery(s, "marketing:ad")

	action, done := s.Handle(Confirm)

	require.True(t, done)
	assert.Equal(t, ActionSelect, action.Kind)
	assert.Equal(t, "ad-creative", action.Item.Name)
	assert.True(t, s.Done())
}

func TestHandle_ConfirmQueuedUnqueues(t *testing.T) {
	s := New(testCatalog(), "brave-search", nil)
	typeQuery(s, "brave")

	action, done := s.Handle(Confirm)

	require.True(t, done)
	assert.Equal(t, ActionUnqueue, action.Kind)
	assert.Equal(t, "brave-search", action.Item.Name)
}

func TestHandle_ConfirmOtherWhileQueuedSelects(t *testing.T) {
	s := New(testCatalog(), "brave-search", nil)
	typeQuery(s, "fizzy")

	action, done := s.Handle(Confirm)

	require.True(t, done)
	assert.Equal(t, ActionSelect, action.Kind)
	assert.Equal(t, "fizzy-cli", action.Item.Name)
	assert.Equal(t, "brave-search", s.Queued())
}

func TestHandle_Cancel(t *testing.T) {
	s := New(testCatalog(), "", nil)

	action, done := s.Handle(ParseInput("\x1b"))

	require.True(t, done)
	assert.Equal(t, Action{Kind: ActionCancel}, action)
}

func TestHandle_IgnoredAfterDone(t *testing.T) {
	s := New(testCatalog(), "", nil)
	_, done := s.Handle(Cancel)
	require.True(t, done)

	for _, in := range []Input{Confirm, Cancel, Next, Char('a'), Erase} {
		_, done := s.Handle(in)
		assert.False(t, done, "input %s after done", in.Kind)
	}
	assert.Empty(t, s.Query())
	assert.Equal(t, 1, s.Cursor())
}

func TestCancel_MatchesCancelKey(t *testing.T) {
	a := New(testCatalog(), "", nil)
	b := New(testCatalog(), "", nil)

	fromKey, _ := a.Handle(Cancel)
	fromTimeout := b.Cancel()

	assert.Equal(t, fromKey, fromTimeout)
	assert.True(t, b.Done())
}

func TestHandle_IgnoreAndControlChars(t *testing.T) {
	s := New(testCatalog(), "", nil)
	before := s.Display()

	s.Handle(Ignore)
	s.Handle(Input{Kind: InputChar, Rune: 0x01})

	assert.Empty(t, s.Query())
	assert.Equal(t, before, s.Display())
}

func TestRecents_ShownFirst(t *testing.T) {
	recents := []usage.Record{{Name: "fizzy-cli", Namespace: "tools", Count: 2}}
	s := New(testCatalog(), "", recents)

	assert.Equal(t, match.Header(match.RecentGroup), s.Display()[0])
	assert.Equal(t, "fizzy-cli", currentName(t, s))
	assert.Equal(t, recents, s.Recents())
}

func TestRecordUsage(t *testing.T) {
	s := New(testCatalog(), "", nil)
	display := s.Display()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	it, ok := s.Current()
	require.True(t, ok)
	got := s.RecordUsage(it, now)

	require.Len(t, got, 1)
	assert.Equal(t, "ad-creative", got[0].Name)
	assert.Equal(t, "marketing", got[0].Namespace)
	assert.Equal(t, 1, got[0].Count)
	assert.True(t, now.Equal(got[0].LastUsedAt))
	assert.Equal(t, got, s.Recents())
	assert.Equal(t, display, s.Display(), "recording does not rebuild the open list")

	got = s.RecordUsage(it, now.Add(time.Minute))
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Count)
}

func TestRender(t *testing.T) {
	items := testCatalog()

	assert.Equal(t, match.BuildDisplayList(items, nil), Render(items, "", nil))
	assert.Equal(t, match.BuildDisplayList(items, nil), Render(items, "  ", nil))
	assert.Equal(t, match.Flat(match.Filter(items, "mark")), Render(items, "mark", nil))

	for _, d := range Render(items, "e", nil) {
		assert.True(t, d.IsEntry(), "ranked results carry no headers")
		assert.Equal(t, d.Item.Namespace, d.Group)
	}
}

func TestActionKind_String(t *testing.T) {
	assert.Equal(t, "select", ActionSelect.String())
	assert.Equal(t, "unqueue", ActionUnqueue.String())
	assert.Equal(t, "cancel", ActionCancel.String())
	assert.Equal(t, "action(9)", ActionKind(9).String())
}
