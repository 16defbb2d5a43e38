// Package server は、Tokato コマンドセンターの静的ファイル配信を担当します。
//
// このパッケージは、HTTPサーバーの起動、ルーティング、
// エントリHTMLと静的アセットの配信を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - ルートパス（/）へのエントリファイル（index.html）の返却
//   - ベースディレクトリ配下のファイルの静的配信
//   - ベースディレクトリ外へのパストラバーサルの拒否
//
// 仕様:
//   - ルーティングはgin-gonic/ginを使用
//   - エントリファイルはリクエストごとにディスクから読み込む（キャッシュしない）
//   - ルートパスは明示的なハンドラが常に優先される
//   - エントリファイルが存在しない場合は固定メッセージで404を返す
//   - ファイルシステムのその他のエラーは500を返す
//   - グレースフルシャットダウンに対応
package server
