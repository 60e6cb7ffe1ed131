package driver

import (
	"context"
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInputGzipRoundTrip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	path := tempDir + "/rows.tsv.gz"
	ctx := context.Background()

	w, closeW, err := createOutput(ctx, path)
	require.NoError(t, err)
	_, err = fmt.Fprint(w, "id\tfwd\trev\tfwd_qual\trev_qual\nr1\tACGT\tTTTT\tIIII\tIIII\n")
	require.NoError(t, err)
	require.NoError(t, closeW())

	r, closeR, err := openInput(ctx, path)
	require.NoError(t, err)
	defer closeR()

	data, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "id\tfwd\trev\tfwd_qual\trev_qual\nr1\tACGT\tTTTT\tIIII\tIIII\n", string(data))
}

func TestOpenInputPlaintext(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	path := tempDir + "/rows.tsv"
	ctx := context.Background()

	w, closeW, err := createOutput(ctx, path)
	require.NoError(t, err)
	_, err = fmt.Fprint(w, "id\tfwd\trev\tfwd_qual\trev_qual\n")
	require.NoError(t, err)
	require.NoError(t, closeW())

	r, closeR, err := openInput(ctx, path)
	require.NoError(t, err)
	defer closeR()

	data, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "id\tfwd\trev\tfwd_qual\trev_qual\n", string(data))
}
