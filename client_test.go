package gext

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gext-cli/gext/core"
)

// fakeCatalog serves canned metadata and writes its archive bytes to a
// fresh temp file per Download call, the way the real client does.
type fakeCatalog struct {
	info        InfoResult
	infoErr     error
	archive     []byte
	downloadErr error

	gotQuery    core.InfoQuery
	gotDownload string
}

func (f *fakeCatalog) Info(_ context.Context, q core.InfoQuery) (core.InfoResult, error) {
	f.gotQuery = q
	if f.infoErr != nil {
		return core.InfoResult{}, f.infoErr
	}
	return f.info, nil
}

func (f *fakeCatalog) Download(_ context.Context, downloadURL string) (string, int64, error) {
	f.gotDownload = downloadURL
	if f.downloadErr != nil {
		return "", 0, f.downloadErr
	}
	tmp, err := os.CreateTemp("", "gext-test-*.zip")
	if err != nil {
		return "", 0, err
	}
	if _, err := tmp.Write(f.archive); err != nil {
		tmp.Close()
		return "", 0, err
	}
	if err := tmp.Close(); err != nil {
		return "", 0, err
	}
	return tmp.Name(), int64(len(f.archive)), nil
}

// fakeShell is an in-memory ShellProxy.
type fakeShell struct {
	extensions map[string]Extension
	version    string
	listErr    error
	reloaded   []string
}

func (f *fakeShell) ListExtensions() (map[string]core.Extension, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.extensions, nil
}

func (f *fakeShell) ReloadExtension(uuid string) error {
	f.reloaded = append(f.reloaded, uuid)
	return nil
}

func (f *fakeShell) ShellVersion() (string, error) {
	if f.version == "" {
		return "", errors.New("no version")
	}
	return f.version, nil
}

func extensionZip(t *testing.T, uuid string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"metadata.json":  `{"uuid": "` + uuid + `"}`,
		"extension.js":   "const Main = imports.ui.main;\n",
		"stylesheet.css": "",
	}
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const testUUID = "drive-menu@gnome-shell-extensions.gcampax.github.com"

func testInfo() InfoResult {
	return InfoResult{
		UUID:        testUUID,
		Name:        "Removable Drive Menu",
		DownloadURL: "/download-extension/drive-menu.shell-extension.zip",
		PK:          7,
		Version:     "48",
	}
}

func newTestClient(t *testing.T, cat *fakeCatalog, sh *fakeShell, st *fakeSettings) *Client {
	t.Helper()

	c, err := NewClient(
		WithCatalog(cat),
		WithShellProxy(sh),
		WithSettingsStore(st),
		WithShellVersion("48.1"),
	)
	require.NoError(t, err)
	return c
}

func TestClient_Install(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo(), archive: extensionZip(t, testUUID)}
	sh := &fakeShell{}
	st := &fakeSettings{}
	c := newTestClient(t, cat, sh, st)

	destRoot := filepath.Join(t.TempDir(), "extensions")
	got, err := c.Install(context.Background(), testUUID, destRoot)
	require.NoError(t, err)

	assert.Equal(t, testUUID, got.UUID)
	assert.Equal(t, "Removable Drive Menu", got.Name)
	assert.Equal(t, filepath.Join(destRoot, testUUID), got.Path)
	assert.Positive(t, got.DownloadedBytes)
	assert.True(t, got.Enabled)

	assert.Equal(t, testUUID, cat.gotQuery.UUID)
	assert.Equal(t, "48.1", cat.gotQuery.ShellVersion)
	assert.Equal(t, "/download-extension/drive-menu.shell-extension.zip", cat.gotDownload)

	assert.FileExists(t, filepath.Join(got.Path, "metadata.json"))
	assert.FileExists(t, filepath.Join(got.Path, "extension.js"))
	assert.Equal(t, []string{testUUID}, st.enabled)
}

func TestClient_InstallByURL(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo(), archive: extensionZip(t, testUUID)}
	c := newTestClient(t, cat, &fakeShell{}, &fakeSettings{})

	destRoot := t.TempDir()
	got, err := c.Install(context.Background(), "https://extensions.gnome.org/extension/7/removable-drive-menu/", destRoot)
	require.NoError(t, err)

	assert.Equal(t, 7, cat.gotQuery.PK)
	assert.Empty(t, cat.gotQuery.UUID)
	assert.Equal(t, testUUID, got.UUID)
}

func TestClient_InstallWithoutEnable(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo(), archive: extensionZip(t, testUUID)}
	st := &fakeSettings{}
	c := newTestClient(t, cat, &fakeShell{}, st)

	got, err := c.Install(context.Background(), testUUID, t.TempDir(), WithoutEnable())
	require.NoError(t, err)

	assert.False(t, got.Enabled)
	assert.Empty(t, st.enabled)
}

func TestClient_InstallAlreadyOnDisk(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo(), archive: extensionZip(t, testUUID)}
	c := newTestClient(t, cat, &fakeShell{}, &fakeSettings{})

	destRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(destRoot, testUUID), 0o755))

	_, err := c.Install(context.Background(), testUUID, destRoot)
	assert.ErrorIs(t, err, core.ErrAlreadyExists)
}

func TestClient_InstallKnownToSession(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo(), archive: extensionZip(t, testUUID)}
	sh := &fakeShell{extensions: map[string]Extension{
		testUUID: {UUID: testUUID, State: StateEnabled, Path: "/usr/share/gnome-shell/extensions/" + testUUID},
	}}
	c := newTestClient(t, cat, sh, &fakeSettings{})

	_, err := c.Install(context.Background(), testUUID, t.TempDir())
	assert.ErrorIs(t, err, core.ErrAlreadyExists)
}

func TestClient_InstallKnownToSessionMultiple(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo(), archive: extensionZip(t, testUUID)}
	sh := &fakeShell{extensions: map[string]Extension{
		testUUID: {UUID: testUUID, State: StateEnabled, Path: "/usr/share/gnome-shell/extensions/" + testUUID},
	}}
	c := newTestClient(t, cat, sh, &fakeSettings{})

	got, err := c.Install(context.Background(), testUUID, t.TempDir(), WithMultiple())
	require.NoError(t, err)
	assert.Equal(t, testUUID, got.UUID)
}

func TestClient_InstallUninstalledSessionRecordIgnored(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo(), archive: extensionZip(t, testUUID)}
	sh := &fakeShell{extensions: map[string]Extension{
		testUUID: {UUID: testUUID, State: StateUninstalled},
	}}
	c := newTestClient(t, cat, sh, &fakeSettings{})

	_, err := c.Install(context.Background(), testUUID, t.TempDir())
	require.NoError(t, err)
}

func TestClient_InstallNoDownload(t *testing.T) {
	t.Parallel()

	info := testInfo()
	info.DownloadURL = ""
	cat := &fakeCatalog{info: info}
	c := newTestClient(t, cat, &fakeShell{}, &fakeSettings{})

	_, err := c.Install(context.Background(), testUUID, t.TempDir())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestClient_InstallHostileArchive(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "../evil.js"})
	require.NoError(t, err)
	_, err = w.Write([]byte("evil"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	cat := &fakeCatalog{info: testInfo(), archive: buf.Bytes()}
	c := newTestClient(t, cat, &fakeShell{}, &fakeSettings{})

	destRoot := filepath.Join(t.TempDir(), "extensions")
	_, err = c.Install(context.Background(), testUUID, destRoot)
	require.Error(t, err)
	assert.True(t,
		errors.Is(err, core.ErrPathTraversal) || errors.Is(err, zip.ErrInsecurePath),
		"hostile entry must be rejected, got: %v", err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(destRoot), "evil.js"))
}

func TestClient_InstallInvalidIdentifier(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, &fakeCatalog{}, &fakeShell{}, &fakeSettings{})

	_, err := c.Install(context.Background(), "not a uuid!", t.TempDir())
	assert.ErrorIs(t, err, core.ErrInvalidIdentifier)
}

func TestClient_Uninstall(t *testing.T) {
	t.Parallel()

	st := &fakeSettings{enabled: []string{testUUID, "other@x.y"}}
	c := newTestClient(t, &fakeCatalog{}, &fakeShell{}, st)

	destRoot := t.TempDir()
	target := filepath.Join(destRoot, testUUID)
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "metadata.json"), []byte("{}"), 0o644))

	require.NoError(t, c.Uninstall(context.Background(), testUUID, destRoot))

	assert.NoDirExists(t, target)
	assert.Equal(t, []string{"other@x.y"}, st.enabled, "uninstall disables first")
}

func TestClient_UninstallNotInstalled(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, &fakeCatalog{}, &fakeShell{}, &fakeSettings{})

	err := c.Uninstall(context.Background(), testUUID, t.TempDir())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestClient_UninstallByURLResolvesUUID(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo()}
	c := newTestClient(t, cat, &fakeShell{}, &fakeSettings{})

	destRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(destRoot, testUUID), 0o755))

	err := c.Uninstall(context.Background(), "https://extensions.gnome.org/extension/7/removable-drive-menu/", destRoot)
	require.NoError(t, err)
	assert.Equal(t, 7, cat.gotQuery.PK)
	assert.NoDirExists(t, filepath.Join(destRoot, testUUID))
}

func TestClient_Info(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo()}
	sh := &fakeShell{extensions: map[string]Extension{
		testUUID: {UUID: testUUID, Name: "Removable Drive Menu", State: StateEnabled},
	}}
	c := newTestClient(t, cat, sh, &fakeSettings{})

	info, local, err := c.Info(context.Background(), testUUID)
	require.NoError(t, err)
	assert.Equal(t, testUUID, info.UUID)
	require.NotNil(t, local)
	assert.Equal(t, StateEnabled, local.State)
}

func TestClient_InfoNoLocalRecord(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo()}
	c := newTestClient(t, cat, &fakeShell{}, &fakeSettings{})

	info, local, err := c.Info(context.Background(), testUUID)
	require.NoError(t, err)
	assert.Equal(t, testUUID, info.UUID)
	assert.Nil(t, local)
}

func TestClient_InfoSessionListFailureTolerated(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo()}
	sh := &fakeShell{listErr: errors.New("no session")}
	c := newTestClient(t, cat, sh, &fakeSettings{})

	info, local, err := c.Info(context.Background(), testUUID)
	require.NoError(t, err)
	assert.Equal(t, testUUID, info.UUID)
	assert.Nil(t, local)
}

func TestClient_InfoCatalogNotFound(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{infoErr: core.ErrNotFound}
	c := newTestClient(t, cat, &fakeShell{}, &fakeSettings{})

	_, _, err := c.Info(context.Background(), testUUID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestClient_List(t *testing.T) {
	t.Parallel()

	sh := &fakeShell{extensions: map[string]Extension{
		testUUID: {UUID: testUUID, State: StateEnabled},
	}}
	c := newTestClient(t, &fakeCatalog{}, sh, &fakeSettings{})

	got, err := c.List()
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, got, testUUID)
}

func TestClient_Reload(t *testing.T) {
	t.Parallel()

	sh := &fakeShell{}
	c := newTestClient(t, &fakeCatalog{}, sh, &fakeSettings{})

	require.NoError(t, c.Reload(context.Background(), testUUID))
	assert.Equal(t, []string{testUUID}, sh.reloaded)

	err := c.Reload(context.Background(), "bad name!")
	assert.ErrorIs(t, err, core.ErrInvalidIdentifier)
}

func TestClient_ReloadByURL(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{info: testInfo()}
	sh := &fakeShell{}
	c := newTestClient(t, cat, sh, &fakeSettings{})

	require.NoError(t, c.Reload(context.Background(), "https://extensions.gnome.org/extension/7/removable-drive-menu/"))
	assert.Equal(t, 7, cat.gotQuery.PK)
	assert.Equal(t, []string{testUUID}, sh.reloaded)
}
