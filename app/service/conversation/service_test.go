package conversation

import (
	"sync"
	"testing"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Service {
	t.Helper()

	svc, err := New(do.New())
	require.NoError(t, err)

	return svc
}

func TestLanguageUnsetUntilFirstWrite(t *testing.T) {
	store := newStore(t)

	assert.Equal(t, LanguageUnset, store.Language(1))

	store.SetLanguage(1, LanguageEnglish)

	assert.Equal(t, LanguageEnglish, store.Language(1))
	assert.Equal(t, LanguageUnset, store.Language(2), "other identities stay unset")
}

func TestSetLanguageIsIdempotentAndOverwrites(t *testing.T) {
	store := newStore(t)

	store.SetLanguage(7, LanguageVietnamese)
	store.SetLanguage(7, LanguageVietnamese)
	assert.Equal(t, LanguageVietnamese, store.Language(7))

	store.SetLanguage(7, LanguageEnglish)
	assert.Equal(t, LanguageEnglish, store.Language(7))
}

func TestHistoryReturnsACopy(t *testing.T) {
	store := newStore(t)

	store.Append(3, Turn{Role: RoleUser, Content: "hello"})

	history := store.History(3)
	require.Len(t, history, 1)

	history[0].Content = "mutated"

	assert.Equal(t, "hello", store.History(3)[0].Content)
}

func TestAppendPreservesOrder(t *testing.T) {
	store := newStore(t)

	store.Append(5,
		Turn{Role: RoleUser, Content: "a"},
		Turn{Role: RoleModel, Content: "b"},
	)
	store.Append(5, Turn{Role: RoleUser, Content: "c"})

	history := store.History(5)
	require.Len(t, history, 3)
	assert.Equal(t, "a", history[0].Content)
	assert.Equal(t, "b", history[1].Content)
	assert.Equal(t, "c", history[2].Content)
}

func TestPerUserLockSerializesRequests(t *testing.T) {
	store := newStore(t)

	const workers = 16

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			store.Lock(1)
			defer store.Unlock(1)

			// Read-modify-write is only safe under the per-user lock.
			turns := len(store.History(1))
			store.Append(1, Turn{Role: RoleUser, Content: "turn"})

			assert.Len(t, store.History(1), turns+1)
		}()
	}
	wg.Wait()

	assert.Len(t, store.History(1), workers)
}

func TestDistinctUsersDoNotBlockEachOther(t *testing.T) {
	store := newStore(t)

	store.Lock(1)
	defer store.Unlock(1)

	done := make(chan struct{})
	go func() {
		store.Lock(2)
		store.Append(2, Turn{Role: RoleUser, Content: "other user"})
		store.Unlock(2)
		close(done)
	}()

	<-done
	assert.Len(t, store.History(2), 1)
}
