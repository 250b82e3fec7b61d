// Package utility chứa các helper dùng chung: chuyển đổi BSON và Firebase Admin.
package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển một struct (hoặc pointer tới struct) thành map[string]interface{}
// thông qua BSON marshal/unmarshal. Các bson tag của model quyết định tên key,
// nhờ đó map trả về khớp với schema trong collection.
func ToMap(s interface{}) (map[string]interface{}, error) {
	data, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}

	var result map[string]interface{}
	if err := bson.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}

	return result, nil
}
