package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var errNotNumber = errors.New("not a number")

// malformedFields — поля, которые пришли в теле, но не приводятся к нужному типу.
// Ошибка типа становится ошибкой валидации поля, а не ошибкой формата запроса.
type malformedFields map[string]bool

func (m *malformedFields) mark(field string) {
	if *m == nil {
		*m = make(malformedFields)
	}
	(*m)[field] = true
}

// absent: поле не передано, null или пустая строка
func absent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return true
	}
	var s string
	if json.Unmarshal(trimmed, &s) == nil {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// scalarText возвращает текст json-числа или строки; прочие типы не числа
func scalarText(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case json.Number:
		return t.String(), nil
	case string:
		return strings.TrimSpace(t), nil
	default:
		return "", errNotNumber
	}
}

func parseDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	text, err := scalarText(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(text)
}

// parseInteger принимает целые числа (в том числе 3.0) и строки вида "3"
func parseInteger(raw json.RawMessage) (int64, error) {
	text, err := scalarText(raw)
	if err != nil {
		return 0, err
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil || !d.IsInteger() || !d.BigInt().IsInt64() {
		return 0, errNotNumber
	}
	return d.IntPart(), nil
}

func decodeString(raw json.RawMessage, field string, dst *string, bad *malformedFields) {
	if absent(raw) {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		bad.mark(field)
	}
}

func decodeInteger(raw json.RawMessage, field string, bad *malformedFields) *int64 {
	if absent(raw) {
		return nil
	}
	n, err := parseInteger(raw)
	if err != nil {
		bad.mark(field)
		return nil
	}
	return &n
}

// UnmarshalJSON не падает на полях неверного типа, а запоминает их для validate
func (in *ProductInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name       json.RawMessage `json:"name"`
		CategoryID json.RawMessage `json:"category_id"`
		Price      json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*in = ProductInput{}
	decodeString(raw.Name, "name", &in.Name, &in.malformed)
	in.CategoryID = decodeInteger(raw.CategoryID, "category_id", &in.malformed)
	if !absent(raw.Price) {
		price, err := parseDecimal(raw.Price)
		if err != nil {
			in.malformed.mark("price")
		} else {
			in.Price = &price
		}
	}
	return nil
}

// UnmarshalJSON принимает product_id и quantity числом или числовой строкой
func (in *OrderInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		ProductID json.RawMessage `json:"product_id"`
		Quantity  json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*in = OrderInput{}
	in.ProductID = decodeInteger(raw.ProductID, "product_id", &in.malformed)
	if q := decodeInteger(raw.Quantity, "quantity", &in.malformed); q != nil {
		quantity := int(*q)
		in.Quantity = &quantity
	}
	return nil
}
