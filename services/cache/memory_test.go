package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryServiceSetGetDelete(t *testing.T) {
	mc := NewMemoryService()

	err := mc.Set("test_key", []byte("test_value"), time.Minute)
	assert.NoError(t, err)

	value, err := mc.Get("test_key")
	assert.NoError(t, err)
	assert.Equal(t, "test_value", string(value))

	err = mc.Delete("test_key")
	assert.NoError(t, err)

	_, err = mc.Get("test_key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryServiceAdd(t *testing.T) {
	mc := NewMemoryService()

	err := mc.Add("cooldown", []byte("1"), time.Minute)
	assert.NoError(t, err)

	// Second Add within the window must fail
	err = mc.Add("cooldown", []byte("1"), time.Minute)
	assert.ErrorIs(t, err, ErrNotStored)
}

func TestMemoryServiceExpiration(t *testing.T) {
	mc := NewMemoryService()
	current := time.Now()
	mc.now = func() time.Time { return current }

	assert.NoError(t, mc.Add("cooldown", []byte("1"), time.Minute))

	current = current.Add(2 * time.Minute)

	_, err := mc.Get("cooldown")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// An expired entry no longer blocks Add
	assert.NoError(t, mc.Add("cooldown", []byte("1"), time.Minute))
}

func TestMemoryServiceZeroExpirationNeverExpires(t *testing.T) {
	mc := NewMemoryService()
	current := time.Now()
	mc.now = func() time.Time { return current }

	assert.NoError(t, mc.Set("pinned", []byte("v"), 0))

	current = current.Add(24 * time.Hour)

	value, err := mc.Get("pinned")
	assert.NoError(t, err)
	assert.Equal(t, "v", string(value))
}
