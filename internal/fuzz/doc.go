// Package fuzztests houses Go fuzz harnesses for the tile init reader: the
// value parser, the record and header decoders and the document assembler.
// They guard against panics and hangs on arbitrary input and check the
// ordering invariants of every assembled catalogue.
//
// Назначение: прогонять произвольные байты через lingo и deser.
//
// Не делает: чтение каталогов, кэш, CLI.
//
// Зависимости: internal/lingo, internal/deser, internal/testkit.

package fuzztests
