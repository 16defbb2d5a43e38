package main

import (
	"context"
	"fmt"
	"log"

	"tokato/internal/config"
	"tokato/internal/server"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// サーバーを作成
	server.InitMode()
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("サーバーの作成に失敗しました: %v", err)
	}

	// ポートを確保してからバナーを表示する
	if err := srv.Listen(); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}

	// API_KEY はクライアント側アプリケーションが使うもので、サーバーは読まない
	fmt.Println("\n--- Tokato ---")
	fmt.Printf("Command Center online at: %s\n", cfg.BrowserURL())

	if err := srv.Start(context.Background()); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
