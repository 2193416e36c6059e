package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
}

func TestConfigStore_Set_Success(t *testing.T) {
	store := NewConfigStore()

	err := store.Set("key1", "value1")
	require.NoError(t, err)

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", val)
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	err := store.Set("key1", "original")
	require.NoError(t, err)

	err = store.Set("key1", "updated")
	require.NoError(t, err)

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()

	_ = store.Set("str", "hello")
	_ = store.Set("num", 123)

	assert.Equal(t, "hello", store.GetString("str"))
	assert.Equal(t, "", store.GetString("num"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := NewConfigStore()

	_ = store.Set("int", 42)
	_ = store.Set("int64", int64(43))
	_ = store.Set("float", 123.7)
	_ = store.Set("str", "not_a_number")

	assert.Equal(t, 42, store.GetInt("int"))
	assert.Equal(t, 43, store.GetInt("int64"))
	assert.Equal(t, 123, store.GetInt("float"))
	assert.Equal(t, 0, store.GetInt("str"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	store := NewConfigStore()

	_ = store.Set("float", 0.7)
	_ = store.Set("float32", float32(1.5))
	_ = store.Set("int", 2)
	_ = store.Set("str", "nope")

	assert.InDelta(t, 0.7, store.GetFloat("float"), 0.0001)
	assert.InDelta(t, 1.5, store.GetFloat("float32"), 0.0001)
	assert.InDelta(t, 2.0, store.GetFloat("int"), 0.0001)
	assert.Zero(t, store.GetFloat("str"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()

	_ = store.Set("yes", true)
	_ = store.Set("no", false)
	_ = store.Set("str", "true")

	assert.True(t, store.GetBool("yes"))
	assert.False(t, store.GetBool("no"))
	assert.False(t, store.GetBool("str"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStore()

	_ = store.Set("strings", []string{"a", "b"})
	_ = store.Set("anys", []any{"c", "d", 5})
	_ = store.Set("str", "single")

	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("strings"))
	assert.Equal(t, []string{"c", "d"}, store.GetStringSlice("anys"))
	assert.Nil(t, store.GetStringSlice("str"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SaveAndLoad_NoOp(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	_ = store.Set("key1", "value1")
	require.NoError(t, store.Save())
	assert.Equal(t, "value1", store.GetString("key1"))
}

func TestConfigStore_Path(t *testing.T) {
	store := NewConfigStore()

	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	numGoroutines := 50

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			key := "key-" + string(rune('A'+id))
			_ = store.Set(key, id)
		}(i)
	}
	wg.Wait()

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			_, _ = store.Get("key-" + string(rune('A'+id)))
		}(i)
	}
	wg.Wait()

	for i := 0; i < numGoroutines; i++ {
		val, ok := store.Get("key-" + string(rune('A'+i)))
		assert.True(t, ok)
		assert.NotNil(t, val)
	}
}

func TestConfigStore_MultipleInstances(t *testing.T) {
	store1 := NewConfigStore()
	store2 := NewConfigStore()

	_ = store1.Set("key1", "value1")
	_ = store2.Set("key2", "value2")

	_, ok := store1.Get("key2")
	assert.False(t, ok)

	_, ok = store2.Get("key1")
	assert.False(t, ok)
}
