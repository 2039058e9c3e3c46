// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// CredentialsReq は/registerと/loginエンドポイントのリクエストボディを表します。
type CredentialsReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenRes はログイン成功時のレスポンスボディです。
type TokenRes struct {
	AccessToken string `json:"access_token"`
}
