package wizard

import "testing"

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid lowercase", "orders", false},
		{"valid uppercase", "ORDERS", false},
		{"valid with underscore", "order_items", false},
		{"valid alphanumeric", "table123", false},
		{"empty name", "", true},
		{"starts with digit", "123table", true},
		{"with space", "order items", true},
		{"with hyphen", "order-items", true},
		{"with dot", "schema.table", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColumnType(t *testing.T) {
	tests := []struct {
		name       string
		typeName   string
		lengthText string
		wantErr    bool
	}{
		{"integer", "integer", "", false},
		{"bigint", "bigint", "", false},
		{"bool", "bool", "", false},
		{"varchar default length", "varchar", "", false},
		{"varchar explicit length", "varchar", "128", false},
		{"varchar zero length", "varchar", "0", true},
		{"varchar non-numeric length", "varchar", "abc", true},
		{"char with length", "char", "10", false},
		{"unknown type", "not_a_type", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateColumnType(tt.typeName, tt.lengthText)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColumnType(%q, %q) error = %v, wantErr %v", tt.typeName, tt.lengthText, err, tt.wantErr)
			}
		})
	}
}
