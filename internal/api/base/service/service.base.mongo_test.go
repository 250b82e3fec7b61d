package basesvc

import (
	"testing"
)

func TestToUpdateData_MapThuongWrapTrongSet(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{"active": true})
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if update.Set == nil || update.Set["active"] != true {
		t.Errorf("map thường phải được wrap trong $set, có %+v", update)
	}
	if update.Inc != nil || update.Unset != nil {
		t.Error("các operator khác phải để trống")
	}
}

func TestToUpdateData_GiuNguyenUpdateData(t *testing.T) {
	in := &UpdateData{
		Set: map[string]interface{}{"recipients": []string{}},
		Inc: map[string]interface{}{"revision": 1},
	}
	out, err := ToUpdateData(in)
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if out != in {
		t.Error("UpdateData pointer phải được giữ nguyên, không copy")
	}
}

func TestToUpdateData_ValueKhongPhaiPointer(t *testing.T) {
	in := UpdateData{Inc: map[string]interface{}{"revision": 1}}
	out, err := ToUpdateData(in)
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if out.Inc["revision"] != 1 {
		t.Errorf("UpdateData value phải giữ nguyên nội dung, có %+v", out)
	}
}
