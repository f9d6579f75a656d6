package api

import (
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v5"
	"github.com/spaolacci/murmur3"
	"github.com/stretchr/testify/require"

	"github.com/roccodev/xeno-lvb/internal/dump"
	"github.com/roccodev/xeno-lvb/pkg/lvb"
)

func section(magic string, count, entrySize, infoBase uint32, payload []byte) []byte {
	hdr := make([]byte, 32)
	copy(hdr, magic)
	binary.LittleEndian.PutUint32(hdr[4:], uint32(32+len(payload)))
	binary.LittleEndian.PutUint32(hdr[8:], 1)
	binary.LittleEndian.PutUint32(hdr[12:], count)
	binary.LittleEndian.PutUint32(hdr[16:], entrySize)
	binary.LittleEndian.PutUint32(hdr[20:], infoBase)
	return append(hdr, payload...)
}

func testContainer(t *testing.T) *lvb.Container {
	t.Helper()

	hash := murmur3.Sum32([]byte("gmk_door_01"))
	info := make([]byte, 16)
	binary.LittleEndian.PutUint32(info[0:], 42) // bdat id
	binary.LittleEndian.PutUint32(info[12:], hash)

	var body []byte
	body = append(body, section("INFO", 1, 16, 0, info)...)
	body = append(body, section("XFRM", 1, 64, 0, make([]byte, 64))...)
	body = append(body, section("STRG", 1, 0, 0, []byte("gmk_door_01\x00"))...)
	body = append(body, section("DOOR", 1, 4, 0, make([]byte, 4))...)

	buf := make([]byte, 32)
	copy(buf, lvb.MagicLVLB)
	binary.LittleEndian.PutUint32(buf[4:], uint32(32+len(body)))
	binary.LittleEndian.PutUint32(buf[8:], 5)

	c, err := lvb.Decode(append(buf, body...))
	require.NoError(t, err)
	return c
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Use(RequestID())
	NewServer(testContainer(t), dump.Options{}).Register(e)
	return e
}

func doGet(t *testing.T, e *echo.Echo, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetContainer(t *testing.T) {
	t.Parallel()

	rec := doGet(t, newTestEcho(t), "/v1/container")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	var got struct {
		Version  uint32           `json:"version"`
		Sections []map[string]any `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.EqualValues(t, 5, got.Version)
	require.Len(t, got.Sections, 1)
}

func TestGetGimmickByNameAndHash(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)

	rec := doGet(t, e, "/v1/gimmicks/gmk_door_01")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	info, ok := got["info"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "<0000002A>", info["bdat_id"])

	hashKey := dump.HexID(murmur3.Sum32([]byte("gmk_door_01")))
	rec = doGet(t, e, "/v1/gimmicks/"+hashKey)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGimmickNotFound(t *testing.T) {
	t.Parallel()

	rec := doGet(t, newTestEcho(t), "/v1/gimmicks/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "not_found_error", got["error"]["type"])
}

func TestGetBdatGimmick(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)

	rec := doGet(t, e, "/v1/bdat/42")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doGet(t, e, "/v1/bdat/999")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestIDHonoursClientHeader(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/v1/container", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	newTestEcho(t).ServeHTTP(rec, req)
	require.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
}
