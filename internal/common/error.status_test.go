package common

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorIs_PhanBietTheoCodeVaMessage(t *testing.T) {
	if !errors.Is(ErrTenantNotFound, ErrTenantNotFound) {
		t.Error("ErrTenantNotFound phải khớp chính nó")
	}
	// ErrNotFound và ErrTenantNotFound cùng code DB_002 nhưng message khác nhau
	if errors.Is(ErrTenantNotFound, ErrNotFound) {
		t.Error("ErrTenantNotFound không được khớp ErrNotFound (message khác nhau)")
	}
	if errors.Is(ErrDuplicateRecipient, ErrWriteConflict) {
		t.Error("hai lỗi domain khác nhau không được khớp nhau")
	}
}

func TestErrorIs_HoTroWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("xử lý add recipient: %w", ErrDuplicateRecipient)
	if !errors.Is(wrapped, ErrDuplicateRecipient) {
		t.Error("errors.Is phải xuyên qua wrapped error")
	}
}

func TestHosErrors_StatusCodeDung(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrTenantNotFound, StatusNotFound},
		{ErrDuplicateRecipient, StatusConflict},
		{ErrStoreUnavailable, StatusServiceUnavailable},
		{ErrWriteConflict, StatusConflict},
	}
	for _, tc := range cases {
		var customErr *Error
		if !errors.As(tc.err, &customErr) {
			t.Fatalf("%v phải là *common.Error", tc.err)
		}
		if customErr.StatusCode != tc.status {
			t.Errorf("%q phải có status %d, có %d", customErr.Message, tc.status, customErr.StatusCode)
		}
	}
}

func TestConvertMongoError_NilVaNotFound(t *testing.T) {
	if ConvertMongoError(nil) != nil {
		t.Error("nil phải giữ nguyên nil")
	}
	if !errors.Is(ConvertMongoError(ErrNotFound), ErrNotFound) {
		t.Error("ErrNotFound phải được giữ nguyên, không convert")
	}
}

func TestConvertMongoError_CommandErrorTheoKhoangCode(t *testing.T) {
	cases := []struct {
		code int32
		want error
	}{
		{150, ErrMongoConnection},
		{250, ErrMongoAuth},
		{350, ErrMongoQuery},
		{450, ErrMongoWrite},
	}
	for _, tc := range cases {
		got := ConvertMongoError(mongo.CommandError{Code: tc.code, Message: "x"})
		if !errors.Is(got, tc.want) {
			t.Errorf("CommandError code %d phải convert thành %v, có %v", tc.code, tc.want, got)
		}
	}
}

func TestConvertMongoError_LoiKhongXacDinhThanhLoiChung(t *testing.T) {
	got := ConvertMongoError(errors.New("some driver error"))
	var customErr *Error
	if !errors.As(got, &customErr) {
		t.Fatal("lỗi không xác định phải được wrap thành *common.Error")
	}
	if customErr.StatusCode != StatusInternalServerError {
		t.Errorf("lỗi chung phải có status 500, có %d", customErr.StatusCode)
	}
}
