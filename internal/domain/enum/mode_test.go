package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicability_UnmarshalJSON(t *testing.T) {
	tcs := []struct {
		name    string
		input   string
		want    Applicability
		wantErr bool
	}{
		{name: "subtractive name", input: `"subtractive"`, want: Subtractive},
		{name: "additive name", input: `"additive"`, want: Additive},
		{name: "additive number", input: `1`, want: Additive},
		{name: "unknown name", input: `"bogus"`, wantErr: true},
		{name: "out of range number", input: `5`, wantErr: true},
		{name: "negative number", input: `-1`, wantErr: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var got Applicability
			err := json.Unmarshal([]byte(tc.input), &got)
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, Subtractive, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBaseSelection_UnmarshalJSON(t *testing.T) {
	tcs := []struct {
		name    string
		input   string
		want    BaseSelection
		wantErr bool
	}{
		{name: "raw name", input: `"raw"`, want: BaseRaw},
		{name: "derived name", input: `"derived"`, want: BaseDerived},
		{name: "dpp alias", input: `"dpp"`, want: BaseDerived},
		{name: "derived number", input: `1`, want: BaseDerived},
		{name: "unknown name", input: `"bogus"`, wantErr: true},
		{name: "out of range number", input: `2`, wantErr: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var got BaseSelection
			err := json.Unmarshal([]byte(tc.input), &got)
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, BaseRaw, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestModeEnums_NullLeavesValue(t *testing.T) {
	var payload struct {
		Base          BaseSelection `json:"base_selection"`
		Applicability Applicability `json:"applicability"`
	}
	payload.Base = BaseDerived
	payload.Applicability = Additive

	require.NoError(t, json.Unmarshal([]byte(`{"base_selection":null,"applicability":null}`), &payload))
	assert.Equal(t, BaseDerived, payload.Base)
	assert.Equal(t, Additive, payload.Applicability)
}

func TestModeEnums_IsValid(t *testing.T) {
	assert.True(t, Subtractive.IsValid())
	assert.True(t, Additive.IsValid())
	assert.False(t, Applicability(5).IsValid())
	assert.True(t, BaseRaw.IsValid())
	assert.True(t, BaseDerived.IsValid())
	assert.False(t, BaseSelection(-1).IsValid())
}
