package drafts

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
)

func TestDecodeKeepsState(t *testing.T) {
	state := entity.NewState()
	state.Type = entity.TypeWiFi
	state.Fields = entity.FormFields{"ssid": "HomeNet"}
	state.Style.Gradient.Enabled = true

	data, err := json.Marshal(state)
	require.NoError(t, err)
	got, err := decode(data)
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestDecodeEmptyFields(t *testing.T) {
	got, err := decode([]byte(`{"type":"text"}`))
	require.NoError(t, err)
	assert.NotNil(t, got.Fields)

	_, err = decode([]byte(`{`))
	assert.Error(t, err)
}

func TestGetUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	_, err := NewStorage(client).Get(context.Background(), "sess")
	assert.Error(t, err)
	assert.Equal(t, "draft:sess", key("sess"))
}
