package flagstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemFlagStoreBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemFlagStore()

	flags, err := s.Get(ctx, "user1")
	assert.NoError(err)
	assert.Empty(flags)

	assert.NoError(s.Add(ctx, "user1", []string{FlagHighFrequency, FlagAutomatedPattern}))
	assert.NoError(s.Add(ctx, "user1", []string{FlagAutomatedPattern}))

	flags, err = s.Get(ctx, "user1")
	assert.NoError(err)
	assert.Equal([]string{FlagAutomatedPattern, FlagHighFrequency}, flags)

	assert.NoError(s.Remove(ctx, "user1", []string{FlagAutomatedPattern, "never-added"}))
	flags, err = s.Get(ctx, "user1")
	assert.NoError(err)
	assert.Equal([]string{FlagHighFrequency}, flags)

	// removing from an unknown user is a no-op
	assert.NoError(s.Remove(ctx, "user2", []string{FlagHighFrequency}))
}
