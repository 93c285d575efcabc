package models

import "time"

// TokenPair — пара токенов, выдаваемая при входе и обмене refresh-токена.
//
// Описание:
//   - AccessToken — короткоживущий JWT (scope=access_token) для доступа к API;
//   - RefreshToken — долгоживущий JWT (scope=refresh_token); сервер запоминает
//     последний выданный токен в записи пользователя;
//   - TokenType — тип по bearer-конвенции, всегда "bearer";
//   - AccessExpiresAt — момент истечения access-токена (UTC).
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	TokenType       string
	AccessExpiresAt time.Time
}
