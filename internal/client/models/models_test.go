package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    ID
		wantErr bool
	}{
		{name: "number", in: `101`, want: "101"},
		{name: "string", in: `"a1b2"`, want: "a1b2"},
		{name: "numeric string", in: `"7"`, want: "7"},
		{name: "null", in: `null`, want: ""},
		{name: "bool", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.in), &id)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestID_Marshal(t *testing.T) {
	b, err := json.Marshal(struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c,omitempty"`
	}{A: "12", B: "x-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":12,"b":"x-1"}`, string(b))
}

func TestID_MarshalNonCanonicalNumbers(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{id: "0", want: `0`},
		{id: "-3", want: `-3`},
		{id: "12345678901234567890", want: `12345678901234567890`},
		{id: "007", want: `"007"`},
		{id: "+5", want: `"+5"`},
		{id: "-0", want: `"-0"`},
		{id: "-", want: `"-"`},
		{id: "1e3", want: `"1e3"`},
		{id: " 1", want: `" 1"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			b, err := json.Marshal(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))

			var back ID
			require.NoError(t, json.Unmarshal(b, &back))
			assert.Equal(t, tt.id, back)
		})
	}
}

func TestUser_RoundTripWithPaddedID(t *testing.T) {
	u := User{ID: "007", Email: "bond@x.com", Token: "t"}
	b, err := json.Marshal(u)
	require.NoError(t, err)

	var got User
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, u, got)
}

func TestDecimal_Unmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: `5`, want: "5"},
		{in: `"2.50"`, want: "2.5"},
		{in: `""`, want: "0"},
		{in: `"  "`, want: "0"},
		{in: `null`, want: "0"},
		{in: `"abc"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Decimal
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d.Equal(decimal.RequireFromString(tt.want)), "got %s", d)
		})
	}
}

func TestStockAdjustment_EmptyQty(t *testing.T) {
	var s StockAdjustment
	require.NoError(t, json.Unmarshal([]byte(`{"stock_adj_id":1,"adjustment_qty":""}`), &s))
	assert.True(t, s.AdjustmentQty.IsZero())

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"adjustment_qty":0`)
}

func TestValidate_Status(t *testing.T) {
	valid := []interface{ Validate() error }{
		Category{}, Category{Status: StatusActive},
		Unit{Status: StatusInactive}, Tax{}, Supplier{Status: StatusActive}, Membership{},
	}
	for _, v := range valid {
		assert.NoError(t, v.Validate())
	}

	invalid := []interface{ Validate() error }{
		Category{Status: "bogus"}, Unit{Status: "Active"}, Tax{Status: "on"},
		Supplier{Status: " "}, Membership{Status: "disabled"},
	}
	for _, v := range invalid {
		assert.ErrorIs(t, v.Validate(), ErrInvalidStatus)
	}
}

func TestCategory_OmitsEmptyIDAndStatus(t *testing.T) {
	b, err := json.Marshal(Category{CategoryName: "Drinks"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"category_name":"Drinks","category_desc":""}`, string(b))
}

func TestSale_DecodesMixedNumbers(t *testing.T) {
	body := `{
		"sale_id": 3,
		"products": [{"product_id": 1, "qty": "2", "price": 10.5, "total": 21}],
		"sales_date": "2024-05-01",
		"payment_method": "cash",
		"discount_amt": 0,
		"discount_percentage": 5,
		"tax": 2,
		"total": 20.9
	}`

	var s Sale
	require.NoError(t, json.Unmarshal([]byte(body), &s))

	assert.Equal(t, ID("3"), s.SaleID)
	require.Len(t, s.Products, 1)
	assert.True(t, s.Products[0].Qty.Equal(decimal.NewFromInt(2)))
	assert.True(t, s.Products[0].Price.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, ID("2"), s.Tax)

	out, err := json.Marshal(s.Products[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"product_id":1,"qty":2,"price":10.5,"total":21}`, string(out))
}

func TestUnit_DescriptionWireName(t *testing.T) {
	var u Unit
	require.NoError(t, json.Unmarshal([]byte(`{"unit_id":4,"unit_name":"kg","group_desc":"kilogram","status":"active"}`), &u))
	assert.Equal(t, "kilogram", u.UnitDesc)
	assert.True(t, u.Status.Valid())
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusInactive.Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, Status("Active").Valid())
}

func TestUser(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.IsAdmin())
	assert.Equal(t, "", nilUser.DisplayName())

	u := &User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com", Role: RoleAdmin}
	assert.True(t, u.IsAdmin())
	assert.Equal(t, "Ada Lovelace", u.DisplayName())

	u = &User{Email: "clerk@x.com", Role: "clerk"}
	assert.False(t, u.IsAdmin())
	assert.Equal(t, "clerk@x.com", u.DisplayName())
}

func TestKinds(t *testing.T) {
	require.Len(t, Kinds, 11)

	seen := map[string]bool{}
	for _, k := range Kinds {
		assert.False(t, seen[k.Name], "duplicate kind %s", k.Name)
		seen[k.Name] = true
		assert.NotEmpty(t, k.Path)
		assert.NotEmpty(t, k.Envelope)
		assert.NotEmpty(t, k.IDField)
	}

	k, ok := KindByName("membership")
	require.True(t, ok)
	assert.Equal(t, "membershipType", k.Path)
	assert.Equal(t, "membershipTypes", k.Envelope)

	_, ok = KindByName("invoice")
	assert.False(t, ok)
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "anonymous", StateAnonymous.String())
	assert.Equal(t, "authenticating", StateAuthenticating.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
}
