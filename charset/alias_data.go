package charset

// defaultAliasData ships the encodings this package handles natively plus
// the common aliases a document is likely to use, in the exact alias-file
// format NewAliasTableFromReader parses (spec.md §6 "Alias-file format").
// A caller that needs the full IANA list can still call LoadAliasTable
// with its own file; this default is what NewDefaultAliasTable loads.
const defaultAliasData = `
# canonical-name  MIB-enum  alias...
UTF-8 106 utf8 u.t.f.8 unicode-1-1-utf-8 unicode11utf8
UTF-16 1015 utf16
UTF-16BE 1013 unicodebig unicodefffe
UTF-16LE 1014 unicodelittle unicodefeff
UTF-32 1017 utf32
UTF-32BE 1018
UTF-32LE 1019
UCS-2 1000 ucs2 iso-10646-ucs-2
UCS-4 1001 ucs4 iso-10646-ucs-4
US-ASCII 3 ascii us-ascii ansi_x3.4-1968 iso-ir-6 ansi_x3.4-1986 iso_646.irv:1991 iso646-us us ascii7
ISO-8859-1 4 latin1 l1 iso-ir-100 iso_8859-1 cp819 csisolatin1 iso8859-1 iso88591
ISO-8859-2 5 latin2 l2 iso-ir-101 iso_8859-2 iso88592
ISO-8859-3 6 latin3 l3 iso-ir-109 iso_8859-3 iso88593
ISO-8859-9 12 latin5 l5 iso-ir-148 iso_8859-9 iso88599
ISO-8859-15 111 latin9 csisolatin9 iso885915
windows-1250 2250 cp1250 ms-ee
windows-1251 2251 cp1251 ms-cyrl
windows-1252 2252 cp1252 ms-ansi
windows-1253 2253 cp1253 ms-greek
windows-1254 2254 cp1254 ms-turk
windows-1255 2255 cp1255 ms-hebr
windows-1256 2256 cp1256 ms-arab
Shift_JIS 17 sjis shift-jis ms_kanji csshiftjis
EUC-JP 18 eucjp x-euc-jp
ISO-2022-JP 39 csiso2022jp
EUC-KR 38 euckr
GBK 113 x-gbk
GB18030 114
GB2312 2025 csgb2312 euc-cn gb_2312-80
Big5 2026 csbig5 big-5
HZ-GB-2312 2085 hz
`
