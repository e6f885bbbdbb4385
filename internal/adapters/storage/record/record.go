// Package record define el formato serializado de las colecciones persistidas:
// un sobre JSON {"schema":N,"items":[...]} compartido por todos los backends.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Claves fijas del almacén clave-valor (layout heredado de la app original).
const (
	DogsKey      = "dog-collection"
	AdoptionsKey = "adoption-collection"
)

// SchemaVersion es la versión que escribe este código. El path de carga acepta
// versiones anteriores y las migra al re-guardar.
const SchemaVersion = 1

type envelope struct {
	Schema int             `json:"schema"`
	Items  json.RawMessage `json:"items"`
}

// Encode serializa una colección dentro del sobre versionado.
func Encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return json.Marshal(envelope{Schema: SchemaVersion, Items: raw})
}

// Decode deserializa una colección persistida.
//
// Acepta dos layouts: el sobre versionado actual, y un array JSON pelado
// (schema 0, lo que guardaba la app original sin campo de versión). Un schema
// más nuevo que el soportado es error: mejor negarse que leer a medias.
func Decode[T any](payload []byte) ([]T, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return nil, nil
	}

	// Layout legado: array directo, sin sobre.
	if payload[0] == '[' {
		var items []T
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, fmt.Errorf("decode legacy payload: %w", err)
		}
		return items, nil
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Schema > SchemaVersion {
		return nil, fmt.Errorf("payload schema %d is newer than supported %d", env.Schema, SchemaVersion)
	}

	var items []T
	if err := json.Unmarshal(env.Items, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}
