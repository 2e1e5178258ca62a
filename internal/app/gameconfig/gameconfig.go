// Package gameconfig валидирует игровые конфигурации на границе API.
// Конфигурация - тэгированный union по slug игры: для каждой игры своя
// схема, неизвестные игры отклоняются. Проверенный JSON сохраняется в
// заказ как есть и дальше по жизненному циклу не интерпретируется.
package gameconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MinecraftConfig настройки сервера Minecraft
type MinecraftConfig struct {
	Version    string `json:"version" binding:"required"`
	EULA       bool   `json:"eula"`
	MaxPlayers int    `json:"max_players"`
	Motd       string `json:"motd"`
}

// RustConfig настройки сервера Rust
type RustConfig struct {
	WorldSize  int    `json:"world_size"`
	Seed       int64  `json:"seed"`
	MaxPlayers int    `json:"max_players"`
	ServerName string `json:"server_name"`
}

// ValheimConfig настройки сервера Valheim
type ValheimConfig struct {
	WorldName string `json:"world_name"`
	Password  string `json:"password"`
}

// GenericConfig игры без собственной схемы: допускаются только
// строковые переменные окружения
type GenericConfig struct {
	Env map[string]string `json:"env"`
}

// Validate разбирает и проверяет конфигурацию для игры gameSlug.
// Возвращает нормализованный JSON для хранения в заказе.
func Validate(gameSlug string, raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	var parsed interface{}

	switch gameSlug {
	case "minecraft":
		cfg := MinecraftConfig{}
		if err := strictUnmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		if cfg.Version == "" {
			return nil, fmt.Errorf("minecraft: не указана версия")
		}
		if !cfg.EULA {
			return nil, fmt.Errorf("minecraft: требуется принять EULA")
		}
		if cfg.MaxPlayers < 0 {
			return nil, fmt.Errorf("minecraft: max_players не может быть отрицательным")
		}
		if cfg.MaxPlayers == 0 {
			cfg.MaxPlayers = 20
		}
		parsed = cfg

	case "rust":
		cfg := RustConfig{}
		if err := strictUnmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		if cfg.WorldSize != 0 && (cfg.WorldSize < 1000 || cfg.WorldSize > 6000) {
			return nil, fmt.Errorf("rust: world_size должен быть в диапазоне 1000-6000")
		}
		if cfg.MaxPlayers < 0 {
			return nil, fmt.Errorf("rust: max_players не может быть отрицательным")
		}
		parsed = cfg

	case "valheim":
		cfg := ValheimConfig{}
		if err := strictUnmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		if cfg.WorldName == "" {
			return nil, fmt.Errorf("valheim: не указано имя мира")
		}
		if cfg.Password != "" && len(cfg.Password) < 5 {
			return nil, fmt.Errorf("valheim: пароль короче 5 символов")
		}
		parsed = cfg

	default:
		cfg := GenericConfig{}
		if err := strictUnmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		parsed = cfg
	}

	out, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal game config: %w", err)
	}
	return out, nil
}

// strictUnmarshal отклоняет неизвестные поля, чтобы опечатки в
// конфигурации не проходили молча
func strictUnmarshal(raw json.RawMessage, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("неверная игровая конфигурация: %w", err)
	}
	return nil
}
