package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/joimopro25-dot/allinstock-sub001/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateYParse(t *testing.T) {
	id := pkgjwt.Identity{UserID: "u1", CompanyID: "c1", Email: "ana@example.com", Role: "manager"}
	tok, err := pkgjwt.Generate(secret, id, "allinstock", 60)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(secret, "allinstock", tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_EmisorDistinto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u1", CompanyID: "c1"}, "otro", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, "allinstock", tok)
	assert.Error(t, err)
}

func TestParse_SinEmpresa(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u1"}, "", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, "", tok)
	assert.Error(t, err, "un token sin company_id no identifica a la empresa")
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u1", CompanyID: "c1"}, "", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, "", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.Identity{UserID: "u1", CompanyID: "c1"}, "", 60)
	assert.Error(t, err)
}
