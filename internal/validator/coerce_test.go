package validator

import (
	"encoding/json"
	"testing"
)

func TestNumber_Decode(t *testing.T) {
	cases := []struct {
		raw     string
		val     *int
		invalid bool
	}{
		{`5`, intPtr(5), false},
		{`"5"`, intPtr(5), false},
		{`" 17 "`, intPtr(17), false},
		{`null`, nil, false},
		{`""`, nil, false},
		{`"abc"`, nil, true},
		{`5.5`, nil, true},
		{`true`, nil, true},
		{`[5]`, nil, true},
	}
	for _, tc := range cases {
		var n Number
		if err := json.Unmarshal([]byte(tc.raw), &n); err != nil {
			t.Fatalf("Unmarshal(%s) must never fail: %v", tc.raw, err)
		}
		if n.Invalid != tc.invalid {
			t.Errorf("Unmarshal(%s): invalid=%v, want %v", tc.raw, n.Invalid, tc.invalid)
		}
		if (n.Val == nil) != (tc.val == nil) {
			t.Errorf("Unmarshal(%s): val=%v, want %v", tc.raw, n.Val, tc.val)
		} else if tc.val != nil && *n.Val != *tc.val {
			t.Errorf("Unmarshal(%s): val=%d, want %d", tc.raw, *n.Val, *tc.val)
		}
	}
}

func TestFlag_Decode(t *testing.T) {
	cases := []struct {
		raw     string
		val     *bool
		invalid bool
	}{
		{`true`, boolPtr(true), false},
		{`false`, boolPtr(false), false},
		{`"true"`, boolPtr(true), false},
		{`"false"`, boolPtr(false), false},
		{`null`, nil, false},
		{`""`, nil, false},
		{`"yes"`, nil, true},
		{`1`, nil, true},
	}
	for _, tc := range cases {
		var f Flag
		if err := json.Unmarshal([]byte(tc.raw), &f); err != nil {
			t.Fatalf("Unmarshal(%s) must never fail: %v", tc.raw, err)
		}
		if f.Invalid != tc.invalid {
			t.Errorf("Unmarshal(%s): invalid=%v, want %v", tc.raw, f.Invalid, tc.invalid)
		}
		if (f.Val == nil) != (tc.val == nil) {
			t.Errorf("Unmarshal(%s): val=%v, want %v", tc.raw, f.Val, tc.val)
		} else if tc.val != nil && *f.Val != *tc.val {
			t.Errorf("Unmarshal(%s): val=%v, want %v", tc.raw, *f.Val, *tc.val)
		}
	}
}

// The whole payload must survive decoding even when roll and
// systemAccess carry garbage, so every violation reports at once.
func TestValidateStudentCreate_Coercion(t *testing.T) {
	v := New()

	t.Run("numeric string roll passes", func(t *testing.T) {
		var req StudentCreateRequest
		body := `{"name":"Ana","email":"ana@example.com","roll":"5"}`
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if errs := v.ValidateStudentCreate(&req); errs != nil {
			t.Errorf("Expected no errors, got %v", errs.Messages())
		}
		if req.Roll.Val == nil || *req.Roll.Val != 5 {
			t.Errorf("Roll not coerced: %+v", req.Roll)
		}
	})

	t.Run("bad roll and flag collect with other violations", func(t *testing.T) {
		var req StudentCreateRequest
		body := `{"email":"nope","roll":"abc","systemAccess":"yes"}`
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		errs := v.ValidateStudentCreate(&req)
		for _, want := range []string{
			"Name is required",
			"Invalid email address",
			"Roll must be a number",
			"System access must be true or false",
		} {
			if !hasMessage(errs, want) {
				t.Errorf("Missing %q in %v", want, errs.Messages())
			}
		}
	})

	t.Run("boolean roll is rejected", func(t *testing.T) {
		var req StudentCreateRequest
		body := `{"name":"Ana","email":"ana@example.com","roll":true}`
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		errs := v.ValidateStudentCreate(&req)
		if !hasMessage(errs, "Roll must be a number") {
			t.Errorf("Got %v", errs.Messages())
		}
	})
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }
