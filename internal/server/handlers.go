package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"tokato/internal/config"

	"github.com/gin-gonic/gin"
)

// EntryNotFoundMessage はエントリファイルが存在しない場合のレスポンスボディ
const EntryNotFoundMessage = "Error: index.html not found in project root."

// StaticHandler はエントリファイルと静的アセットを配信する
type StaticHandler struct {
	// シンボリックリンク解決済みのベースディレクトリ
	baseDir   string
	entryFile string
}

// NewStaticHandler は新しいStaticHandlerを作成する
func NewStaticHandler(cfg config.StaticConfig) (*StaticHandler, error) {
	baseDir, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("ベースディレクトリの解決に失敗: %w", err)
	}
	baseDir, err = filepath.EvalSymlinks(baseDir)
	if err != nil {
		return nil, fmt.Errorf("ベースディレクトリのシンボリックリンク解決に失敗: %w", err)
	}

	entryFile := cfg.EntryFile
	if entryFile == "" {
		entryFile = config.DefaultEntryFile
	}

	return &StaticHandler{
		baseDir:   baseDir,
		entryFile: entryFile,
	}, nil
}

// HandleRoot はルートパスでエントリファイルを返す
// ファイルは毎回ディスクから読み込む
func (h *StaticHandler) HandleRoot(c *gin.Context) {
	path := filepath.Join(h.baseDir, h.entryFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.String(http.StatusNotFound, EntryNotFoundMessage)
			return
		}
		log.Printf("エントリファイルの読み込みに失敗しました: request_id=%s err=%v", c.GetString(requestIDKey), err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// HandleAsset はベースディレクトリ配下のファイルを配信する
func (h *StaticHandler) HandleAsset(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		h.HandleMethodNotAllowed(c)
		return
	}

	name, err := h.resolve(c.Request.URL.Path)
	if err != nil {
		if isNotFound(err) {
			h.notFound(c)
			return
		}
		h.internalError(c, err)
		return
	}

	f, err := os.Open(name)
	if err != nil {
		if isNotFound(err) {
			h.notFound(c)
			return
		}
		h.internalError(c, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.internalError(c, err)
		return
	}
	// ディレクトリや特殊ファイルは配信しない
	if !info.Mode().IsRegular() {
		h.notFound(c)
		return
	}

	contentType, err := detectContentType(name, f)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.Header("Content-Type", contentType)

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}

// HandleMethodNotAllowed はGET/HEAD以外のメソッドを拒否する
func (h *StaticHandler) HandleMethodNotAllowed(c *gin.Context) {
	c.Header("Allow", "GET, HEAD")
	c.String(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}

// ヘルパー関数

// notFound は標準の404レスポンスを返す
func (h *StaticHandler) notFound(c *gin.Context) {
	c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// internalError はファイルシステムエラーを500として返す
func (h *StaticHandler) internalError(c *gin.Context, err error) {
	log.Printf("アセットの配信に失敗しました: request_id=%s path=%s err=%v", c.GetString(requestIDKey), c.Request.URL.Path, err)
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
