package gext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gext-cli/gext/core"
)

// fakeSettings is an in-memory SettingsStore.
type fakeSettings struct {
	enabled  []string
	setCalls int
	fail     error
}

func (f *fakeSettings) Enabled() ([]string, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return append([]string(nil), f.enabled...), nil
}

func (f *fakeSettings) SetEnabled(uuids []string) error {
	if f.fail != nil {
		return f.fail
	}
	f.setCalls++
	f.enabled = append([]string(nil), uuids...)
	return nil
}

func newSettingsClient(t *testing.T, store *fakeSettings) *Client {
	t.Helper()
	c, err := NewClient(WithSettingsStore(store), WithShellProxy(&fakeShell{}))
	require.NoError(t, err)
	return c
}

func TestClient_Enable(t *testing.T) {
	t.Parallel()

	store := &fakeSettings{enabled: []string{"a@b.c"}}
	c := newSettingsClient(t, store)

	changed, err := c.Enable(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"a@b.c", "new@example.com"}, store.enabled)
}

func TestClient_EnableAlreadyEnabled(t *testing.T) {
	t.Parallel()

	store := &fakeSettings{enabled: []string{"a@b.c"}}
	c := newSettingsClient(t, store)

	changed, err := c.Enable(context.Background(), "a@b.c")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, store.setCalls, "unchanged list must not be written back")
	assert.Equal(t, []string{"a@b.c"}, store.enabled)
}

func TestClient_EnableByURL(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo()}
	store := &fakeSettings{}
	c := newTestClient(t, cat, &fakeShell{}, store)

	changed, err := c.Enable(context.Background(), "https://extensions.gnome.org/extension/7/removable-drive-menu/")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 7, cat.gotQuery.PK, "catalog URL resolves through the catalog")
	assert.Equal(t, []string{testUUID}, store.enabled)
}

func TestClient_Disable(t *testing.T) {
	t.Parallel()

	store := &fakeSettings{enabled: []string{"a@b.c", "mid@x.y", "z@b.c"}}
	c := newSettingsClient(t, store)

	changed, err := c.Disable(context.Background(), "mid@x.y")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"a@b.c", "z@b.c"}, store.enabled, "remaining entries keep their order")
}

func TestClient_DisableNotEnabled(t *testing.T) {
	t.Parallel()

	store := &fakeSettings{enabled: []string{"a@b.c"}}
	c := newSettingsClient(t, store)

	changed, err := c.Disable(context.Background(), "other@x.y")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, store.setCalls)
}

func TestClient_DisableByURL(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo()}
	store := &fakeSettings{enabled: []string{testUUID, "other@x.y"}}
	c := newTestClient(t, cat, &fakeShell{}, store)

	changed, err := c.Disable(context.Background(), "https://extensions.gnome.org/extension/7/removable-drive-menu/")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"other@x.y"}, store.enabled)
}

func TestClient_EnableDisableInvalidIdentifier(t *testing.T) {
	t.Parallel()

	c := newSettingsClient(t, &fakeSettings{})

	_, err := c.Enable(context.Background(), "evil/name")
	assert.ErrorIs(t, err, core.ErrInvalidIdentifier)

	_, err = c.Disable(context.Background(), "has space")
	assert.ErrorIs(t, err, core.ErrInvalidIdentifier)
}

func TestClient_EnableStoreFailure(t *testing.T) {
	t.Parallel()

	store := &fakeSettings{fail: errors.New("no schema")}
	c := newSettingsClient(t, store)

	_, err := c.Enable(context.Background(), "a@b.c")
	assert.Error(t, err)
}
