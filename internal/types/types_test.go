package types

import "testing"

func TestTypeIDRoundTrip(t *testing.T) {
	cases := []SqlType{
		Bool(),
		Char(10),
		VarChar(255),
		SmallIntType(),
		IntegerType(),
		BigIntType(),
		RealType(),
		DoubleType(),
	}
	for _, sqlType := range cases {
		len, _ := sqlType.CharsLen()
		got := FromTypeID(sqlType.TypeID(), len)
		if got.String() != sqlType.String() {
			t.Errorf("round trip failed for %v: got %v", sqlType, got)
		}
	}
}

func TestFamilyCompareSymmetric(t *testing.T) {
	families := []SqlTypeFamily{
		FamilyBool, FamilyString, FamilySmallInt, FamilyInteger,
		FamilyBigInt, FamilyReal, FamilyDouble,
	}
	for _, a := range families {
		for _, b := range families {
			got, err := FamilyCompare(a, b)
			rev, revErr := FamilyCompare(b, a)
			if (err == nil) != (revErr == nil) {
				t.Fatalf("asymmetric error-ness for (%v,%v)", a, b)
			}
			if err == nil && got != rev {
				t.Errorf("FamilyCompare(%v,%v)=%v but FamilyCompare(%v,%v)=%v", a, b, got, b, a, rev)
			}
		}
	}
}

func TestFamilyCompareIntDominance(t *testing.T) {
	got, err := FamilyCompare(FamilySmallInt, FamilyBigInt)
	if err != nil || got != FamilyBigInt {
		t.Errorf("expected BigInt to dominate SmallInt, got %v, err %v", got, err)
	}
	got, err = FamilyCompare(FamilyBigInt, FamilyInteger)
	if err != nil || got != FamilyBigInt {
		t.Errorf("expected BigInt to dominate Integer, got %v, err %v", got, err)
	}
}

func TestFamilyCompareFloatDominance(t *testing.T) {
	got, err := FamilyCompare(FamilyReal, FamilyDouble)
	if err != nil || got != FamilyDouble {
		t.Errorf("expected Double to dominate Real, got %v, err %v", got, err)
	}
}

func TestFamilyCompareMixedFloatInt(t *testing.T) {
	got, err := FamilyCompare(FamilyInteger, FamilyDouble)
	if err != nil || got != FamilyDouble {
		t.Errorf("expected float side to win mixed comparison, got %v, err %v", got, err)
	}
}

func TestFamilyCompareIncomparable(t *testing.T) {
	_, err := FamilyCompare(FamilyBool, FamilyString)
	if err == nil {
		t.Error("expected incomparable error for bool vs string")
	}
	_, err = FamilyCompare(FamilyString, FamilyInteger)
	if err == nil {
		t.Error("expected incomparable error for string vs integer")
	}
}

func TestSqlTypeFamilyCollapsesIntegral(t *testing.T) {
	for _, sqlType := range []SqlType{SmallIntType(), IntegerType(), BigIntType()} {
		if sqlType.Family() != FamilyInteger {
			t.Errorf("%v.Family() = %v, want FamilyInteger", sqlType, sqlType.Family())
		}
	}
}

func TestFromDataTypeNameDefaultsLength(t *testing.T) {
	got, err := FromDataTypeName("varchar", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	len, ok := got.CharsLen()
	if !ok || len != 255 {
		t.Errorf("expected default varchar length 255, got %d", len)
	}
}

func TestFromDataTypeNameUnsupported(t *testing.T) {
	_, err := FromDataTypeName("timestamp", 0)
	if err == nil {
		t.Error("expected NotSupportedType error for timestamp")
	}
}

func TestToPgTypePartialForFloats(t *testing.T) {
	if _, ok := RealType().ToPgType(); ok {
		t.Error("expected ToPgType to report false for Real")
	}
	if _, ok := DoubleType().ToPgType(); ok {
		t.Error("expected ToPgType to report false for Double")
	}
	if pg, ok := IntegerType().ToPgType(); !ok || pg != PgInteger {
		t.Errorf("expected PgInteger for Integer, got %v, ok=%v", pg, ok)
	}
}
