package global

import "testing"

type emailInput struct {
	Email string `validate:"required,email,no_xss"`
}

func TestValidator_EmailHopLe(t *testing.T) {
	InitValidator()

	if err := Validate.Struct(emailInput{Email: "dispatcher@fleet.example.com"}); err != nil {
		t.Errorf("email hợp lệ không được báo lỗi: %v", err)
	}
}

func TestValidator_EmailRongHoacSaiDinhDang(t *testing.T) {
	InitValidator()

	cases := []string{"", "not-an-email", "a@", "@x.com"}
	for _, email := range cases {
		if err := Validate.Struct(emailInput{Email: email}); err == nil {
			t.Errorf("email %q phải bị từ chối", email)
		}
	}
}

func TestValidator_NoXSSChanPayloadNguyHiem(t *testing.T) {
	InitValidator()

	type input struct {
		Value string `validate:"no_xss"`
	}
	if err := Validate.Struct(input{Value: "<script>alert(1)</script>@x.com"}); err == nil {
		t.Error("payload chứa <script phải bị no_xss chặn")
	}
	if err := Validate.Struct(input{Value: "binh-thuong@x.com"}); err != nil {
		t.Errorf("giá trị bình thường không được bị chặn: %v", err)
	}
}
