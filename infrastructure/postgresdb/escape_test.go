package postgresdb_test

import (
	"testing"

	"github.com/jrazmi/stockdata/infrastructure/postgresdb"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "column", input: "year", want: `"year"`},
		{name: "qualified", input: "fs.stock_id", want: `"fs"."stock_id"`},
		{name: "alias", input: "stocks_stock s", want: `"stocks_stock" "s"`},
		{name: "qualified alias", input: "public.stocks_stock s", want: `"public"."stocks_stock" "s"`},
		{name: "injection", input: "year; DROP TABLE stocks_stock", wantErr: true},
		{name: "quote", input: `year"`, wantErr: true},
		{name: "too many parts", input: "a b c", wantErr: true},
		{name: "too many segments", input: "a.b.c", wantErr: true},
		{name: "leading digit", input: "1year", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := postgresdb.QuoteIdentifier(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("QuoteIdentifier(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("QuoteIdentifier(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("QuoteIdentifier(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
