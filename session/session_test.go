package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lampstand/sermonrec/core"
)

func rankedList(n int) core.RankedList {
	list := make(core.RankedList, n)
	for i := range list {
		list[i] = core.SearchHit{
			Sermon: core.Sermon{
				Title:       fmt.Sprintf("Sermon %d", i),
				Description: "description",
				Channel:     "@channel",
				MessageLink: fmt.Sprintf("https://t.me/c/%d", i),
			},
			Similarity: 1 - float64(i)*0.01,
		}
	}
	return list
}

func TestStart_FirstPageClamping(t *testing.T) {
	tests := []struct {
		name      string
		listLen   int
		first     int
		wantCount int
	}{
		{"normal request", 10, 5, 5},
		{"zero clamps to one", 10, 0, 1},
		{"negative clamps to one", 10, -3, 1},
		{"over max clamps to twenty", 30, 25, 20},
		{"more than available", 3, 10, 3},
		{"empty list", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(0, nil)
			page := m.Start(1, rankedList(tt.listLen), tt.first)
			assert.Len(t, page, tt.wantCount)
		})
	}
}

func TestNext_NoSession(t *testing.T) {
	m := NewManager(0, nil)

	_, err := m.Next(1)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStartAndNext_PagesThroughList(t *testing.T) {
	m := NewManager(0, nil)

	// Nine sermons, first page of 2: expect 2, then 5, then 2, then exhausted.
	first := m.Start(1, rankedList(9), 2)
	require.Len(t, first, 2)
	assert.Equal(t, "Sermon 0", first[0].Sermon.Title)
	assert.Equal(t, "Sermon 1", first[1].Sermon.Title)

	second, err := m.Next(1)
	require.NoError(t, err)
	require.Len(t, second, 5)
	assert.Equal(t, "Sermon 2", second[0].Sermon.Title)
	assert.Equal(t, "Sermon 6", second[4].Sermon.Title)

	third, err := m.Next(1)
	require.NoError(t, err)
	require.Len(t, third, 2)
	assert.Equal(t, "Sermon 7", third[0].Sermon.Title)
	assert.Equal(t, "Sermon 8", third[1].Sermon.Title)

	_, err = m.Next(1)
	assert.ErrorIs(t, err, ErrExhausted)

	// Exhaustion is stable across repeated calls.
	_, err = m.Next(1)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestStart_ReplacesSession(t *testing.T) {
	m := NewManager(0, nil)

	m.Start(1, rankedList(9), 5)
	_, err := m.Next(1)
	require.NoError(t, err)

	// A new search resets pagination from the top of the new list.
	m.Start(1, rankedList(3), 1)
	page, err := m.Next(1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Sermon 1", page[0].Sermon.Title)
}

func TestSessions_PerUserIsolation(t *testing.T) {
	m := NewManager(0, nil)

	m.Start(1, rankedList(9), 5)
	m.Start(2, rankedList(6), 5)

	pageA, err := m.Next(1)
	require.NoError(t, err)
	assert.Len(t, pageA, 4)

	pageB, err := m.Next(2)
	require.NoError(t, err)
	assert.Len(t, pageB, 1)
}

func TestRemaining(t *testing.T) {
	m := NewManager(0, nil)

	assert.Equal(t, 0, m.Remaining(1))

	m.Start(1, rankedList(9), 5)
	assert.Equal(t, 4, m.Remaining(1))

	_, err := m.Next(1)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Remaining(1))
}

func TestClear(t *testing.T) {
	m := NewManager(0, nil)

	m.Start(1, rankedList(9), 5)
	m.Clear(1)

	_, err := m.Next(1)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestTTLEviction(t *testing.T) {
	m := NewManager(10*time.Millisecond, nil)

	m.Start(1, rankedList(9), 5)
	require.Equal(t, 1, m.Len())

	time.Sleep(20 * time.Millisecond)

	// Any access prunes idle sessions.
	_, err := m.Next(1)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, 0, m.Len())
}

func TestNext_TouchExtendsLifetime(t *testing.T) {
	m := NewManager(50*time.Millisecond, nil)

	m.Start(1, rankedList(20), 1)

	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		_, err := m.Next(1)
		require.NoError(t, err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(0, nil)

	var wg sync.WaitGroup
	for u := int64(0); u < 10; u++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			m.Start(userID, rankedList(9), 5)
			for {
				if _, err := m.Next(userID); err != nil {
					return
				}
			}
		}(u)
	}
	wg.Wait()

	assert.Equal(t, 10, m.Len())
}
