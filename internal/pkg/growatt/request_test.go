package growatt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapArray(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "non-empty array", body: `[{"id":"1","name":"a"}]`},
		{name: "empty array", body: `[]`, wantErr: true},
		{name: "not an array", body: `{"result":1}`, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := arrayResult().apply([]byte(tt.body))
			if tt.wantErr {
				var invalid *InvalidResponseError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, "empty response", invalid.Message)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.body, string(raw))
		})
	}
}

func TestUnwrapObject(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		raw, err := objectResult().apply([]byte(`{"obj": {"plantId": "1"}}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"plantId": "1"}`, string(raw))
	})

	t.Run("null obj", func(t *testing.T) {
		_, err := objectResult().apply([]byte(`{"obj": null}`))
		var invalid *InvalidResponseError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "empty response", invalid.Message)
	})

	t.Run("empty obj", func(t *testing.T) {
		_, err := objectResult().apply([]byte(`{"obj": {}}`))
		var invalid *InvalidResponseError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "empty response", invalid.Message)
	})

	t.Run("empty list obj", func(t *testing.T) {
		_, err := objectResult().apply([]byte(`{"obj": []}`))
		var invalid *InvalidResponseError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("missing obj", func(t *testing.T) {
		_, err := objectResult().apply([]byte(`{"other": 1}`))
		var invalid *InvalidResponseError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, invalid.Message, "obj")
	})

	t.Run("nested field", func(t *testing.T) {
		raw, err := objectResult("obj", "mix").apply([]byte(`{"obj": {"mix": [["SN1","Mix 1"]]}}`))
		require.NoError(t, err)
		assert.JSONEq(t, `[["SN1","Mix 1"]]`, string(raw))
	})

	t.Run("nested field empty", func(t *testing.T) {
		_, err := objectResult("obj", "mix").apply([]byte(`{"obj": {"mix": []}}`))
		var invalid *InvalidResponseError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("nested field missing", func(t *testing.T) {
		_, err := objectResult("obj", "mix").apply([]byte(`{"obj": {"max": []}}`))
		var invalid *InvalidResponseError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, invalid.Message, "mix")
	})
}

func TestUnwrapBare(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		raw, err := bareResult().apply([]byte(`{"charts": [1,2,3]}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"charts": [1,2,3]}`, string(raw))
	})

	t.Run("null", func(t *testing.T) {
		_, err := bareResult().apply([]byte(`null`))
		var invalid *InvalidResponseError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("empty object", func(t *testing.T) {
		_, err := bareResult().apply([]byte(` { } `))
		var invalid *InvalidResponseError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestDecodeMalformed(t *testing.T) {
	_, err := decode[[]Plant]([]byte(`[{"name": "missing id"}]`))
	var malformed *MalformedJSONError
	require.ErrorAs(t, err, &malformed)
}
