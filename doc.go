// Package wxf converts structured data into the Wolfram Exchange Format.
//
// A Value is an immutable Wolfram expression tree. Trees are built with
// the constructors in this package, from generic documents with
// FromDocument, or from arbitrary Go values with Marshal. An Encoder then
// renders a tree as a binary "8:" frame, a zlib compressed "8C:" frame, or
// Wolfram Language input text.
//
//	v, err := wxf.Marshal(map[string]any{"a": []int{1, 2}})
//	if err != nil {
//		return err
//	}
//	frame, err := wxf.Encode(v)      // 8:A\x01-S\x01af\x02s\x04ListC\x01C\x02
//	text, err := wxf.Text(v)         // <|"a"->{1,2}|>
//
// Integers are stored in the narrowest width that holds them, association
// keys are kept in a canonical order and bare symbol names are qualified
// at encode time, so equal inputs always produce identical bytes.
package wxf
