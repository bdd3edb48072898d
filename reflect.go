package picowire

import (
	"errors"
	"reflect"
	"sync"

	"github.com/picowire/picowire/internal/common"
)

var (
	ErrNotStruct    = errors.New("expected struct")
	ErrNotStructPtr = errors.New("expected pointer to struct")
)

var (
	marshalerType   = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	boolSliceType   = reflect.TypeOf([]bool(nil))
)

// Codec encodes and decodes arbitrary structs through reflection, producing
// the same wire layout a hand-written Marshaler/Unmarshaler pair would:
// exported fields in declaration order, no delimiters. Per-type field plans
// are built once and cached, so the reflect walk over a type's shape is paid
// on first use only.
//
// A Codec is safe for concurrent use; the Serializer/Deserializer instances
// it creates per call are not shared.
type Codec struct {
	opts  Options
	mu    sync.RWMutex
	plans map[reflect.Type]*structPlan
}

type structPlan struct {
	custom bool // type implements Marshaler/Unmarshaler itself
	fields []fieldPlan
}

type fieldPlan struct {
	idx   int
	class common.Class
	typ   reflect.Type
}

// NewCodec returns a codec with the given deserializer options.
func NewCodec(opts Options) *Codec {
	return &Codec{
		opts:  opts,
		plans: make(map[reflect.Type]*structPlan),
	}
}

func (c *Codec) getPlan(t reflect.Type) (*structPlan, error) {
	c.mu.RLock()
	if plan, ok := c.plans[t]; ok {
		c.mu.RUnlock()
		return plan, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if plan, ok := c.plans[t]; ok {
		return plan, nil
	}

	plan := &structPlan{}
	pt := reflect.PointerTo(t)
	if pt.Implements(marshalerType) && pt.Implements(unmarshalerType) {
		plan.custom = true
		c.plans[t] = plan
		return plan, nil
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue // skip unexported
		}
		class := common.Classify(sf.Type)
		if class == common.ClassInvalid {
			return nil, ErrUnsupportedType
		}
		plan.fields = append(plan.fields, fieldPlan{idx: i, class: class, typ: sf.Type})
	}
	c.plans[t] = plan
	return plan, nil
}

// Encode serializes a struct (or pointer to struct) into a fresh buffer.
func (c *Codec) Encode(val any) ([]byte, error) {
	s := NewSerializer()
	if err := c.EncodeInto(s, val); err != nil {
		return nil, err
	}
	return s.Finish(), nil
}

// EncodeFixed serializes into a caller-supplied buffer without allocating,
// failing with ErrBufferTooSmall if the encoding does not fit.
func (c *Codec) EncodeFixed(buf []byte, val any) ([]byte, error) {
	s := NewFixedSerializer(buf)
	if err := c.EncodeInto(s, val); err != nil {
		return nil, err
	}
	return s.Finish(), nil
}

// EncodeInto serializes a struct's fields into an existing serializer.
func (c *Codec) EncodeInto(s *Serializer, val any) error {
	v := reflect.ValueOf(val)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ErrNotStruct
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ErrNotStruct
	}
	return c.encodeStruct(s, v)
}

func (c *Codec) encodeStruct(s *Serializer, v reflect.Value) error {
	plan, err := c.getPlan(v.Type())
	if err != nil {
		return err
	}
	if plan.custom {
		if !v.CanAddr() {
			p := reflect.New(v.Type())
			p.Elem().Set(v)
			v = p.Elem()
		}
		return v.Addr().Interface().(Marshaler).MarshalWire(s)
	}
	for _, f := range plan.fields {
		if err := c.encodeValue(s, v.Field(f.idx), f.class); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) encodeValue(s *Serializer, v reflect.Value, class common.Class) error {
	switch class {
	case common.ClassU8:
		return s.WriteU8(uint8(v.Uint()))
	case common.ClassUint:
		return s.WriteUvarint(v.Uint())
	case common.ClassInt:
		return s.WriteVarint(v.Int())
	case common.ClassBool:
		return s.WriteBool(v.Bool())
	case common.ClassF32:
		return s.WriteF32(float32(v.Float()))
	case common.ClassF64:
		return s.WriteF64(v.Float())
	case common.ClassString:
		return s.WriteString(v.String())
	case common.ClassBytes:
		return s.WriteBytes(v.Bytes())
	case common.ClassBoolSlice:
		if v.Type() == boolSliceType {
			return s.WriteBoolSlice(v.Interface().([]bool))
		}
		tmp := make([]bool, v.Len())
		for i := range tmp {
			tmp[i] = v.Index(i).Bool()
		}
		return s.WriteBoolSlice(tmp)
	case common.ClassSlice:
		mark := s.Len()
		if err := s.WriteUvarint(uint64(v.Len())); err != nil {
			return err
		}
		elemClass := common.Classify(v.Type().Elem())
		for i := 0; i < v.Len(); i++ {
			if err := c.encodeValue(s, v.Index(i), elemClass); err != nil {
				return s.rollback(mark, err)
			}
		}
		return nil
	case common.ClassByteArray:
		tmp := make([]byte, v.Len())
		for i := range tmp {
			tmp[i] = uint8(v.Index(i).Uint())
		}
		return s.WriteRaw(tmp)
	case common.ClassArray:
		mark := s.Len()
		if err := s.WriteUvarint(uint64(v.Len())); err != nil {
			return err
		}
		elemClass := common.Classify(v.Type().Elem())
		for i := 0; i < v.Len(); i++ {
			if err := c.encodeValue(s, v.Index(i), elemClass); err != nil {
				return s.rollback(mark, err)
			}
		}
		return nil
	case common.ClassStruct:
		return c.encodeStruct(s, v)
	case common.ClassPointer:
		if v.IsNil() {
			return ErrUnsupportedType
		}
		return c.encodeStruct(s, v.Elem())
	default:
		return ErrUnsupportedType
	}
}

// Decode deserializes data into out, which must be a pointer to struct.
func (c *Codec) Decode(data []byte, out any) error {
	return c.DecodeFrom(NewDeserializerOptions(data, c.opts), out)
}

// DecodeFrom deserializes a struct's fields from an existing deserializer.
func (c *Codec) DecodeFrom(d *Deserializer, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNotStructPtr
	}
	return c.decodeStruct(d, v.Elem())
}

func (c *Codec) decodeStruct(d *Deserializer, v reflect.Value) error {
	plan, err := c.getPlan(v.Type())
	if err != nil {
		return err
	}
	if plan.custom {
		return v.Addr().Interface().(Unmarshaler).UnmarshalWire(d)
	}
	for _, f := range plan.fields {
		if err := c.decodeValue(d, v.Field(f.idx), f.class); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) decodeValue(d *Deserializer, v reflect.Value, class common.Class) error {
	switch class {
	case common.ClassU8:
		b, err := d.ReadU8()
		if err != nil {
			return err
		}
		v.SetUint(uint64(b))
	case common.ClassUint:
		u, err := d.ReadUvarint()
		if err != nil {
			return err
		}
		if v.OverflowUint(u) {
			return ErrInvalidLength
		}
		v.SetUint(u)
	case common.ClassInt:
		n, err := d.ReadVarint()
		if err != nil {
			return err
		}
		if v.OverflowInt(n) {
			return ErrInvalidLength
		}
		v.SetInt(n)
	case common.ClassBool:
		b, err := d.ReadBool()
		if err != nil {
			return err
		}
		v.SetBool(b)
	case common.ClassF32:
		f, err := d.ReadF32()
		if err != nil {
			return err
		}
		v.SetFloat(float64(f))
	case common.ClassF64:
		f, err := d.ReadF64()
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case common.ClassString:
		str, err := d.ReadString()
		if err != nil {
			return err
		}
		v.SetString(str)
	case common.ClassBytes:
		b, err := d.ReadBytes()
		if err != nil {
			return err
		}
		v.SetBytes(b)
	case common.ClassBoolSlice:
		bits, err := d.ReadBoolSlice()
		if err != nil {
			return err
		}
		if v.Type() == boolSliceType {
			v.Set(reflect.ValueOf(bits))
			return nil
		}
		out := reflect.MakeSlice(v.Type(), len(bits), len(bits))
		for i, bit := range bits {
			out.Index(i).SetBool(bit)
		}
		v.Set(out)
	case common.ClassSlice:
		count, err := d.readCount()
		if err != nil {
			return err
		}
		elemClass := common.Classify(v.Type().Elem())
		out := reflect.MakeSlice(v.Type(), count, count)
		for i := 0; i < count; i++ {
			if err := c.decodeValue(d, out.Index(i), elemClass); err != nil {
				return err
			}
		}
		v.Set(out)
	case common.ClassByteArray:
		raw, err := d.ReadRaw(v.Len())
		if err != nil {
			return err
		}
		for i, b := range raw {
			v.Index(i).SetUint(uint64(b))
		}
	case common.ClassArray:
		count, err := d.readCount()
		if err != nil {
			return err
		}
		if count != v.Len() {
			return ErrInvalidLength
		}
		elemClass := common.Classify(v.Type().Elem())
		for i := 0; i < count; i++ {
			if err := c.decodeValue(d, v.Index(i), elemClass); err != nil {
				return err
			}
		}
	case common.ClassStruct:
		return c.decodeStruct(d, v)
	case common.ClassPointer:
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return c.decodeStruct(d, v.Elem())
	default:
		return ErrUnsupportedType
	}
	return nil
}
