package qris

import (
	"errors"
	"testing"
)

func TestBuilderBuild(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	defer b.Release()

	got, err := b.
		PayloadFormat("01").
		InitiationMethod(InitiationDynamic).
		Template("26",
			Sub(SubTagGlobalID, "ID.CO.QRIS.WWW"),
			Sub(SubTagMerchantPAN, "936009153000000001"),
			Sub(SubTagMerchantID, "ID1020000000001"),
			Sub(SubTagMerchantCriteria, "UMI")).
		Field(TagDomesticRepository, "0014ID.CO.QRIS.WWW0215ID10200000000010303UMI").
		MerchantCategory("5812").
		Currency("360").
		Amount("15000").
		CountryCode("ID").
		MerchantName("WARUNG MAKAN SEDERHANA").
		MerchantCity("JAKARTA").
		PostalCode("12345").
		AdditionalData(Sub(SubTagReferenceLabel, "INV001"), Sub(SubTagPurposeOfTransaction, "LUNCH")).
		Build()
	if err != nil {
		t.Fatalf("Build = %v", err)
	}
	if got != dynamicRefOnly {
		t.Errorf("Build =\n%s\nwant\n%s", got, dynamicRefOnly)
	}
}

func TestBuilderFirstErrorWins(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	defer b.Release()

	_, err := b.Field("0", "x").Template("62", Sub("123", "y")).Build()
	var ee *EncodeError
	if !errors.As(err, &ee) || ee.Tag != "0" || !errors.Is(err, ErrInvalidTag) {
		t.Errorf("Build = %v, want invalid tag 0", err)
	}
	if _, err := b.Payload(); err == nil {
		t.Error("Payload() returned no error")
	}
}

func TestBuilderValueTooLong(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	defer b.Release()

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := b.MerchantName(string(long)).Build(); !errors.Is(err, ErrValueTooLong) {
		t.Errorf("Build = %v, want ErrValueTooLong", err)
	}
}

func TestBuilderPayload(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	defer b.Release()

	p, err := b.PayloadFormat("01").InitiationMethod(InitiationStatic).Payload()
	if err != nil {
		t.Fatalf("Payload = %v", err)
	}
	if !p.IsStatic() || p.Len() != 2 {
		t.Errorf("Payload = %v", p.Tags())
	}
}

func TestBuilderMustBuildPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustBuild did not panic")
		}
	}()
	NewBuilder().Field("bad", "x").MustBuild()
}
