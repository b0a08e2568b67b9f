package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultLayout(t *testing.T) {
	l, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "fec_itcont", l.Name)
	require.Equal(t, 21, l.FieldCount())
	require.Equal(t, 0, l.Index(RoleRecipient))
	require.Equal(t, 10, l.Index(RoleZip))
	require.Equal(t, 13, l.Index(RoleDate))
	require.Equal(t, 14, l.Index(RoleAmount))
	require.Equal(t, 15, l.Index(RoleOtherID))
	require.Equal(t, "TRANSACTION_AMT", l.FieldName(RoleAmount))
	require.Len(t, l.Fingerprint, 64)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: short
fields:
  - name: ID
    role: recipient
  - name: ZIP
    role: zip
  - name: DT
    role: date
  - name: AMT
    role: amount
  - name: OTHER
    role: other_id
`), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, l.FieldCount())
	require.Equal(t, 3, l.Index(RoleAmount))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "reading layout file")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no name",
			yaml:    "fields:\n  - name: A\n",
			wantErr: "layout name must not be empty",
		},
		{
			name:    "no fields",
			yaml:    "name: x\n",
			wantErr: "no fields",
		},
		{
			name:    "duplicate field",
			yaml:    "name: x\nfields:\n  - name: A\n  - name: A\n",
			wantErr: `duplicate field name "A"`,
		},
		{
			name:    "unknown role",
			yaml:    "name: x\nfields:\n  - name: A\n    role: state\n",
			wantErr: `unknown role "state"`,
		},
		{
			name:    "role assigned twice",
			yaml:    "name: x\nfields:\n  - name: A\n    role: zip\n  - name: B\n    role: zip\n",
			wantErr: `role "zip" assigned to both "A" and "B"`,
		},
		{
			name:    "missing role",
			yaml:    "name: x\nfields:\n  - name: A\n    role: recipient\n",
			wantErr: `missing field with role "zip"`,
		},
		{
			name:    "not yaml",
			yaml:    "name: [",
			wantErr: "parsing layout",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
