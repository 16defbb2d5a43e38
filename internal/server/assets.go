package server

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gabriel-vasile/mimetype"
)

// errOutsideBaseDir はベースディレクトリ外を指すパスを表す
// 呼び出し側には404として見せる
var errOutsideBaseDir = fmt.Errorf("ベースディレクトリ外へのアクセス: %w", fs.ErrNotExist)

// moduleSourceTypes はブラウザがimportmap経由で読み込むソースの拡張子
// システムのmime.typesでは .ts が video/mp2t になる環境がある
var moduleSourceTypes = map[string]string{
	".ts":  "text/javascript; charset=utf-8",
	".tsx": "text/javascript; charset=utf-8",
	".mts": "text/javascript; charset=utf-8",
	".jsx": "text/javascript; charset=utf-8",
	".mjs": "text/javascript; charset=utf-8",
}

// resolve はリクエストパスをベースディレクトリ配下の実パスに変換する
func (h *StaticHandler) resolve(urlPath string) (string, error) {
	if strings.ContainsAny(urlPath, "\x00\\") {
		return "", errOutsideBaseDir
	}
	for _, seg := range strings.Split(urlPath, "/") {
		if seg == ".." {
			return "", errOutsideBaseDir
		}
	}

	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	full := filepath.Join(h.baseDir, filepath.FromSlash(rel))

	// シンボリックリンクの先も含めてベースディレクトリ内に収まること
	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		return "", err
	}
	if !within(h.baseDir, resolved) {
		return "", errOutsideBaseDir
	}

	return resolved, nil
}

// within はtargetがbase配下にあるかを判定する
func within(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// isNotFound は404として扱うエラーかを判定する
func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// detectContentType は拡張子、なければ内容からContent-Typeを推定する
// 内容を読んだ場合は先頭にシークし直す
func detectContentType(name string, r io.ReadSeeker) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := moduleSourceTypes[ext]; ok {
		return ct, nil
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct, nil
	}

	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("Content-Typeの判定に失敗: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("ファイル先頭へのシークに失敗: %w", err)
	}

	return mt.String(), nil
}
