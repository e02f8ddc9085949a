package docker

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/screensplit/internal/model"
)

// sampleAssignment returns server 1 of the reference layout.
func sampleAssignment() model.Assignment {
	return model.Assignment{
		Index:  1,
		Subnet: netip.MustParsePrefix("2000:42:0:0:1000::/68"),
		X:      model.PixelRange{Start: 120, End: 239},
	}
}

// TestBuildLabels verifies that BuildLabels converts an assignment into a
// label map with all keys and values.
func TestBuildLabels(t *testing.T) {
	labels := BuildLabels(model.DefaultLayout(), sampleAssignment())

	assert.Equal(t, ManagedByValue, labels[LabelManagedBy],
		"managed-by label should always be set to the constant value")
	assert.Equal(t, "1", labels[LabelServerIndex])
	assert.Equal(t, "2000:42:0:0:1000::/68", labels[LabelSubnet])
	assert.Equal(t, "120", labels[LabelXStart])
	assert.Equal(t, "239", labels[LabelXEnd])
	assert.Equal(t, "1920x1080", labels[LabelScreen])
	assert.Len(t, labels, 6)
}

// TestBuildAndParseLabelRoundTrip verifies that ParseLabels inverts
// BuildLabels.
func TestBuildAndParseLabelRoundTrip(t *testing.T) {
	want := sampleAssignment()

	got, err := ParseLabels(BuildLabels(model.DefaultLayout(), want))
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

// TestParseLabels_MissingRequired verifies that every missing key is named.
func TestParseLabels_MissingRequired(t *testing.T) {
	_, err := ParseLabels(map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelXStart:    "0",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), LabelServerIndex)
	assert.Contains(t, err.Error(), LabelSubnet)
	assert.Contains(t, err.Error(), LabelXEnd)
	assert.NotContains(t, err.Error(), LabelXStart)
}

// TestParseLabels_InvalidValues covers foreign and malformed labels.
func TestParseLabels_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"foreign manager", LabelManagedBy, "someone-else"},
		{"non-numeric index", LabelServerIndex, "one"},
		{"negative start", LabelXStart, "-5"},
		{"bad subnet", LabelSubnet, "2000:42::/200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := BuildLabels(model.DefaultLayout(), sampleAssignment())
			labels[tt.key] = tt.value

			_, err := ParseLabels(labels)
			assert.Error(t, err)
		})
	}
}

// TestVerifyLabels verifies that generated labels match their assignment
// and that an edited label is caught.
func TestVerifyLabels(t *testing.T) {
	a := sampleAssignment()
	labels := BuildLabels(model.DefaultLayout(), a)
	require.NoError(t, VerifyLabels(labels, a))

	labels[LabelXEnd] = "9999"
	err := VerifyLabels(labels, a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want server")

	delete(labels, LabelSubnet)
	err = VerifyLabels(labels, a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), LabelSubnet)
}
