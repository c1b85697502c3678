/*
Package pak is a decoder/encoder for Unreal Engine's PAK archive format.

It parses archives across thirteen historical on-disk revisions (V0..V11),
each gating a slightly different entry and footer layout, and extracts file
payloads through the correct combination of decryption, block-framed
decompression, and offset resolution. Writers produce archives that are
byte-identical on round-trip for a chosen revision.

This is not a full implementation of every feature Unreal's UnrealPak tool
supports: writing the V2 index shape (PathHashIndex, used by V10 and V11)
is not implemented and returns an *Error with Kind KindUnsupported. Oodle
decompression is never linked directly; callers that need it register a
decompressor function with compress.SetOodleDecompressor.

The on-disk layout follows Unreal Engine's FPakFile / FPakEntry format, as
reverse engineered by the modding community and implemented by UnrealPak.
*/
package pak
