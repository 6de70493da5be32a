// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "unsafe"

// Handle types. Dispatchable and non-dispatchable handles are both
// carried as 64-bit values; the loader passes them through goffi as
// such.
type (
	Instance       uint64
	PhysicalDevice uint64
	Device         uint64
	Queue          uint64
	CommandBuffer  uint64

	Buffer              uint64
	Image               uint64
	ImageView           uint64
	Sampler             uint64
	DeviceMemory        uint64
	ShaderModule        uint64
	PipelineLayout      uint64
	DescriptorSetLayout uint64
	DescriptorPool      uint64
	DescriptorSet       uint64
	RenderPass          uint64
	Framebuffer         uint64
	Pipeline            uint64
	CommandPool         uint64
	Fence               uint64
	Semaphore           uint64
	SwapchainKHR        uint64
	SurfaceKHR          uint64
)

// NullHandle is the zero value of every handle type.
const NullHandle = 0

// Result is VkResult.
type Result int32

// Result codes the backend inspects.
const (
	Success                     Result = 0
	NotReady                    Result = 1
	Timeout                     Result = 2
	Incomplete                  Result = 5
	ErrorOutOfHostMemory        Result = -1
	ErrorOutOfDeviceMemory      Result = -2
	ErrorInitializationFailed   Result = -3
	ErrorDeviceLost             Result = -4
	ErrorLayerNotPresent        Result = -6
	ErrorExtensionNotPresent    Result = -7
	ErrorIncompatibleDriver     Result = -9
	ErrorSurfaceLostKHR         Result = -1000000000
	ErrorNativeWindowInUseKHR   Result = -1000000001
	SuboptimalKHR               Result = 1000001003
	ErrorOutOfDateKHR           Result = -1000001004
	ErrorFragmentedPool         Result = -12
	ErrorOutOfPoolMemory        Result = -1000069000
	ErrorValidationFailedEXT    Result = -1000011001
	ErrorFormatNotSupported     Result = -11
	ErrorFeatureNotPresent      Result = -8
	ErrorTooManyObjects         Result = -10
	ErrorMemoryMapFailed        Result = -5
	ErrorInvalidExternalHandle  Result = -1000072003
	ErrorFragmentation          Result = -1000161000
	ErrorUnknown                Result = -13
	ErrorIncompatibleDisplayKHR Result = -1000003001
)

// StructureType is VkStructureType.
type StructureType uint32

const (
	StructureTypeApplicationInfo               StructureType = 0
	StructureTypeInstanceCreateInfo            StructureType = 1
	StructureTypeDeviceQueueCreateInfo         StructureType = 2
	StructureTypeDeviceCreateInfo              StructureType = 3
	StructureTypeSubmitInfo                    StructureType = 4
	StructureTypeMemoryAllocateInfo            StructureType = 5
	StructureTypeMappedMemoryRange             StructureType = 6
	StructureTypeFenceCreateInfo               StructureType = 8
	StructureTypeSemaphoreCreateInfo           StructureType = 9
	StructureTypeBufferCreateInfo              StructureType = 12
	StructureTypeImageCreateInfo               StructureType = 14
	StructureTypeImageViewCreateInfo           StructureType = 15
	StructureTypeShaderModuleCreateInfo        StructureType = 16
	StructureTypePipelineShaderStageCreateInfo StructureType = 18
	StructureTypePipelineVertexInputState      StructureType = 19
	StructureTypePipelineInputAssemblyState    StructureType = 20
	StructureTypePipelineTessellationState     StructureType = 21
	StructureTypePipelineViewportState         StructureType = 22
	StructureTypePipelineRasterizationState    StructureType = 23
	StructureTypePipelineMultisampleState      StructureType = 24
	StructureTypePipelineDepthStencilState     StructureType = 25
	StructureTypePipelineColorBlendState       StructureType = 26
	StructureTypePipelineDynamicState          StructureType = 27
	StructureTypeGraphicsPipelineCreateInfo    StructureType = 28
	StructureTypeComputePipelineCreateInfo     StructureType = 29
	StructureTypePipelineLayoutCreateInfo      StructureType = 30
	StructureTypeSamplerCreateInfo             StructureType = 31
	StructureTypeDescriptorSetLayoutCreateInfo StructureType = 32
	StructureTypeDescriptorPoolCreateInfo      StructureType = 33
	StructureTypeDescriptorSetAllocateInfo     StructureType = 34
	StructureTypeWriteDescriptorSet            StructureType = 35
	StructureTypeFramebufferCreateInfo         StructureType = 37
	StructureTypeRenderPassCreateInfo          StructureType = 38
	StructureTypeCommandPoolCreateInfo         StructureType = 39
	StructureTypeCommandBufferAllocateInfo     StructureType = 40
	StructureTypeCommandBufferBeginInfo        StructureType = 42
	StructureTypeRenderPassBeginInfo           StructureType = 43
	StructureTypeBufferMemoryBarrier           StructureType = 44
	StructureTypeImageMemoryBarrier            StructureType = 45
	StructureTypeMemoryBarrier                 StructureType = 46
	StructureTypeSwapchainCreateInfoKHR        StructureType = 1000001000
	StructureTypePresentInfoKHR                StructureType = 1000001001
	StructureTypeXlibSurfaceCreateInfoKHR      StructureType = 1000004000
	StructureTypeWin32SurfaceCreateInfoKHR     StructureType = 1000009000
	StructureTypeDebugUtilsMessengerCreateInfo StructureType = 1000128004
	StructureTypePhysicalDeviceFeatures2       StructureType = 1000059000
	StructureTypeMetalSurfaceCreateInfoEXT     StructureType = 1000217000
)

// Flag and enum aliases used by the structs below. Values mirror the
// Vulkan numeric assignments.
type (
	Flags                   = uint32
	Format                  uint32
	ImageLayout             uint32
	ImageTiling             uint32
	ImageType               uint32
	ImageViewType           uint32
	SampleCountFlagBits     uint32
	SharingMode             uint32
	AttachmentLoadOp        uint32
	AttachmentStoreOp       uint32
	PipelineBindPoint       uint32
	DescriptorType          uint32
	IndexType               uint32
	Filter                  uint32
	SamplerMipmapMode       uint32
	SamplerAddressMode      uint32
	BorderColor             uint32
	CompareOp               uint32
	PrimitiveTopology       uint32
	PolygonMode             uint32
	FrontFace               uint32
	BlendFactor             uint32
	BlendOp                 uint32
	StencilOp               uint32
	LogicOp                 uint32
	DynamicState            uint32
	PresentModeKHR          uint32
	ColorSpaceKHR           uint32
	CommandBufferLevel      uint32
	SubpassContents         uint32
	ShaderStageFlagBits     uint32
	AccessFlags             = uint32
	PipelineStageFlags      = uint32
	ImageUsageFlags         = uint32
	BufferUsageFlags        = uint32
	ImageAspectFlags        = uint32
	MemoryPropertyFlags     = uint32
	ImageCreateFlags        = uint32
	CullModeFlags           = uint32
	ColorComponentFlags     = uint32
	DependencyFlags         = uint32
	QueueFlags              = uint32
	FenceCreateFlags        = uint32
	CommandPoolCreateFlags  = uint32
	CommandBufferUsageFlags = uint32
	DescriptorPoolFlags     = uint32
	SurfaceTransformFlags   = uint32
	CompositeAlphaFlags     = uint32
)

const (
	ImageLayoutUndefined              ImageLayout = 0
	ImageLayoutGeneral                ImageLayout = 1
	ImageLayoutColorAttachment        ImageLayout = 2
	ImageLayoutDepthStencilAttachment ImageLayout = 3
	ImageLayoutDepthStencilReadOnly   ImageLayout = 4
	ImageLayoutShaderReadOnly         ImageLayout = 5
	ImageLayoutTransferSrc            ImageLayout = 6
	ImageLayoutTransferDst            ImageLayout = 7
	ImageLayoutPreinitialized         ImageLayout = 8
	ImageLayoutPresentSrcKHR          ImageLayout = 1000001002
)

const (
	AccessIndirectCommandReadBit         AccessFlags = 0x00000001
	AccessIndexReadBit                   AccessFlags = 0x00000002
	AccessVertexAttributeReadBit         AccessFlags = 0x00000004
	AccessUniformReadBit                 AccessFlags = 0x00000008
	AccessInputAttachmentReadBit         AccessFlags = 0x00000010
	AccessShaderReadBit                  AccessFlags = 0x00000020
	AccessShaderWriteBit                 AccessFlags = 0x00000040
	AccessColorAttachmentReadBit         AccessFlags = 0x00000080
	AccessColorAttachmentWriteBit        AccessFlags = 0x00000100
	AccessDepthStencilAttachmentReadBit  AccessFlags = 0x00000200
	AccessDepthStencilAttachmentWriteBit AccessFlags = 0x00000400
	AccessTransferReadBit                AccessFlags = 0x00000800
	AccessTransferWriteBit               AccessFlags = 0x00001000
	AccessHostReadBit                    AccessFlags = 0x00002000
	AccessHostWriteBit                   AccessFlags = 0x00004000
	AccessMemoryReadBit                  AccessFlags = 0x00008000
	AccessMemoryWriteBit                 AccessFlags = 0x00010000
)

const (
	PipelineStageTopOfPipeBit             PipelineStageFlags = 0x00000001
	PipelineStageDrawIndirectBit          PipelineStageFlags = 0x00000002
	PipelineStageVertexInputBit           PipelineStageFlags = 0x00000004
	PipelineStageVertexShaderBit          PipelineStageFlags = 0x00000008
	PipelineStageFragmentShaderBit        PipelineStageFlags = 0x00000080
	PipelineStageEarlyFragmentTestsBit    PipelineStageFlags = 0x00000100
	PipelineStageLateFragmentTestsBit     PipelineStageFlags = 0x00000200
	PipelineStageColorAttachmentOutputBit PipelineStageFlags = 0x00000400
	PipelineStageComputeShaderBit         PipelineStageFlags = 0x00000800
	PipelineStageTransferBit              PipelineStageFlags = 0x00001000
	PipelineStageBottomOfPipeBit          PipelineStageFlags = 0x00002000
	PipelineStageAllGraphicsBit           PipelineStageFlags = 0x00008000
	PipelineStageAllCommandsBit           PipelineStageFlags = 0x00010000
)

const (
	ImageUsageTransferSrcBit            ImageUsageFlags = 0x00000001
	ImageUsageTransferDstBit            ImageUsageFlags = 0x00000002
	ImageUsageSampledBit                ImageUsageFlags = 0x00000004
	ImageUsageStorageBit                ImageUsageFlags = 0x00000008
	ImageUsageColorAttachmentBit        ImageUsageFlags = 0x00000010
	ImageUsageDepthStencilAttachmentBit ImageUsageFlags = 0x00000020
	ImageUsageInputAttachmentBit        ImageUsageFlags = 0x00000080
)

const (
	BufferUsageTransferSrcBit    BufferUsageFlags = 0x00000001
	BufferUsageTransferDstBit    BufferUsageFlags = 0x00000002
	BufferUsageUniformTexelBit   BufferUsageFlags = 0x00000004
	BufferUsageStorageTexelBit   BufferUsageFlags = 0x00000008
	BufferUsageUniformBufferBit  BufferUsageFlags = 0x00000010
	BufferUsageStorageBufferBit  BufferUsageFlags = 0x00000020
	BufferUsageIndexBufferBit    BufferUsageFlags = 0x00000040
	BufferUsageVertexBufferBit   BufferUsageFlags = 0x00000080
	BufferUsageIndirectBufferBit BufferUsageFlags = 0x00000100
)

const (
	ImageAspectColorBit   ImageAspectFlags = 0x00000001
	ImageAspectDepthBit   ImageAspectFlags = 0x00000002
	ImageAspectStencilBit ImageAspectFlags = 0x00000004
)

const (
	MemoryPropertyDeviceLocalBit  MemoryPropertyFlags = 0x00000001
	MemoryPropertyHostVisibleBit  MemoryPropertyFlags = 0x00000002
	MemoryPropertyHostCoherentBit MemoryPropertyFlags = 0x00000004
	MemoryPropertyHostCachedBit   MemoryPropertyFlags = 0x00000008
)

const (
	QueueGraphicsBit QueueFlags = 0x00000001
	QueueComputeBit  QueueFlags = 0x00000002
	QueueTransferBit QueueFlags = 0x00000004
)

const (
	ShaderStageVertexBit                 ShaderStageFlagBits = 0x00000001
	ShaderStageTessellationControlBit    ShaderStageFlagBits = 0x00000002
	ShaderStageTessellationEvaluationBit ShaderStageFlagBits = 0x00000004
	ShaderStageGeometryBit               ShaderStageFlagBits = 0x00000008
	ShaderStageFragmentBit               ShaderStageFlagBits = 0x00000010
	ShaderStageComputeBit                ShaderStageFlagBits = 0x00000020
)

const (
	DescriptorTypeSampler              DescriptorType = 0
	DescriptorTypeCombinedImageSampler DescriptorType = 1
	DescriptorTypeSampledImage         DescriptorType = 2
	DescriptorTypeStorageImage         DescriptorType = 3
	DescriptorTypeUniformTexelBuffer   DescriptorType = 4
	DescriptorTypeStorageTexelBuffer   DescriptorType = 5
	DescriptorTypeUniformBuffer        DescriptorType = 6
	DescriptorTypeStorageBuffer        DescriptorType = 7
	DescriptorTypeInputAttachment      DescriptorType = 10
)

const (
	AttachmentLoadOpLoad     AttachmentLoadOp = 0
	AttachmentLoadOpClear    AttachmentLoadOp = 1
	AttachmentLoadOpDontCare AttachmentLoadOp = 2

	AttachmentStoreOpStore    AttachmentStoreOp = 0
	AttachmentStoreOpDontCare AttachmentStoreOp = 1
)

const (
	PipelineBindPointGraphics PipelineBindPoint = 0
	PipelineBindPointCompute  PipelineBindPoint = 1
)

const (
	IndexTypeUint16 IndexType = 0
	IndexTypeUint32 IndexType = 1
)

const (
	PresentModeImmediateKHR PresentModeKHR = 0
	PresentModeMailboxKHR   PresentModeKHR = 1
	PresentModeFifoKHR      PresentModeKHR = 2
)

const (
	FenceCreateSignaledBit FenceCreateFlags = 0x00000001

	CommandPoolCreateTransientBit          CommandPoolCreateFlags = 0x00000001
	CommandPoolCreateResetCommandBufferBit CommandPoolCreateFlags = 0x00000002

	CommandBufferUsageOneTimeSubmitBit CommandBufferUsageFlagsBit = 0x00000001

	DescriptorPoolCreateFreeDescriptorSetBit DescriptorPoolFlags = 0x00000001

	ImageCreateCubeCompatibleBit ImageCreateFlags = 0x00000010

	CompositeAlphaOpaqueBitKHR CompositeAlphaFlags = 0x00000001

	DependencyByRegionBit DependencyFlags = 0x00000001
)

// CommandBufferUsageFlagsBit aliases the usage flag type for the one
// constant above.
type CommandBufferUsageFlagsBit = uint32

// QueueFamilyIgnored marks no queue family ownership transfer.
const QueueFamilyIgnored = ^uint32(0)

// SubpassExternal marks a dependency outside the render pass.
const SubpassExternal = ^uint32(0)

// WholeSize covers a buffer to its end.
const WholeSize = ^uint64(0)

// RemainingMipLevels / RemainingArrayLayers cover a full range.
const (
	RemainingMipLevels   = ^uint32(0)
	RemainingArrayLayers = ^uint32(0)
)

// Extent2D is VkExtent2D.
type Extent2D struct {
	Width  uint32
	Height uint32
}

// Extent3D is VkExtent3D.
type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// Offset2D is VkOffset2D.
type Offset2D struct {
	X int32
	Y int32
}

// Offset3D is VkOffset3D.
type Offset3D struct {
	X int32
	Y int32
	Z int32
}

// Rect2D is VkRect2D.
type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

// Viewport is VkViewport.
type Viewport struct {
	X        float32
	Y        float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

// ApplicationInfo is VkApplicationInfo.
type ApplicationInfo struct {
	SType              StructureType
	_                  uint32
	PNext              unsafe.Pointer
	PApplicationName   *byte
	ApplicationVersion uint32
	_                  uint32
	PEngineName        *byte
	EngineVersion      uint32
	APIVersion         uint32
}

// InstanceCreateInfo is VkInstanceCreateInfo.
type InstanceCreateInfo struct {
	SType                   StructureType
	_                       uint32
	PNext                   unsafe.Pointer
	Flags                   Flags
	_                       uint32
	PApplicationInfo        *ApplicationInfo
	EnabledLayerCount       uint32
	_                       uint32
	PpEnabledLayerNames     *(*byte)
	EnabledExtensionCount   uint32
	_                       uint32
	PpEnabledExtensionNames *(*byte)
}

// DeviceQueueCreateInfo is VkDeviceQueueCreateInfo.
type DeviceQueueCreateInfo struct {
	SType            StructureType
	_                uint32
	PNext            unsafe.Pointer
	Flags            Flags
	QueueFamilyIndex uint32
	QueueCount       uint32
	_                uint32
	PQueuePriorities *float32
}

// DeviceCreateInfo is VkDeviceCreateInfo.
type DeviceCreateInfo struct {
	SType                   StructureType
	_                       uint32
	PNext                   unsafe.Pointer
	Flags                   Flags
	QueueCreateInfoCount    uint32
	PQueueCreateInfos       *DeviceQueueCreateInfo
	EnabledLayerCount       uint32
	_                       uint32
	PpEnabledLayerNames     *(*byte)
	EnabledExtensionCount   uint32
	_                       uint32
	PpEnabledExtensionNames *(*byte)
	PEnabledFeatures        unsafe.Pointer
}

// QueueFamilyProperties is VkQueueFamilyProperties.
type QueueFamilyProperties struct {
	QueueFlags                  QueueFlags
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

// MemoryType is VkMemoryType.
type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

// MemoryHeap is VkMemoryHeap.
type MemoryHeap struct {
	Size  uint64
	Flags Flags
	_     uint32
}

// PhysicalDeviceMemoryProperties is VkPhysicalDeviceMemoryProperties.
type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [32]MemoryType
	MemoryHeapCount uint32
	_               uint32
	MemoryHeaps     [16]MemoryHeap
}

// PhysicalDeviceProperties is VkPhysicalDeviceProperties. The limits
// block is kept as raw storage; the backend reads only the head
// fields.
type PhysicalDeviceProperties struct {
	APIVersion    uint32
	DriverVersion uint32
	VendorID      uint32
	DeviceID      uint32
	DeviceType    uint32
	DeviceName    [256]byte
	UUID          [16]byte
	Limits        [504]byte
	Sparse        [20]byte
}

// MemoryRequirements is VkMemoryRequirements.
type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
	_              uint32
}

// MemoryAllocateInfo is VkMemoryAllocateInfo.
type MemoryAllocateInfo struct {
	SType           StructureType
	_               uint32
	PNext           unsafe.Pointer
	AllocationSize  uint64
	MemoryTypeIndex uint32
	_               uint32
}

// MappedMemoryRange is VkMappedMemoryRange.
type MappedMemoryRange struct {
	SType  StructureType
	_      uint32
	PNext  unsafe.Pointer
	Memory DeviceMemory
	Offset uint64
	Size   uint64
}

// BufferCreateInfo is VkBufferCreateInfo.
type BufferCreateInfo struct {
	SType                 StructureType
	_                     uint32
	PNext                 unsafe.Pointer
	Flags                 Flags
	_                     uint32
	Size                  uint64
	Usage                 BufferUsageFlags
	SharingMode           SharingMode
	QueueFamilyIndexCount uint32
	_                     uint32
	PQueueFamilyIndices   *uint32
}

// ImageCreateInfo is VkImageCreateInfo.
type ImageCreateInfo struct {
	SType                 StructureType
	_                     uint32
	PNext                 unsafe.Pointer
	Flags                 ImageCreateFlags
	ImageType             ImageType
	Format                Format
	Extent                Extent3D
	MipLevels             uint32
	ArrayLayers           uint32
	Samples               SampleCountFlagBits
	Tiling                ImageTiling
	Usage                 ImageUsageFlags
	SharingMode           SharingMode
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
	InitialLayout         ImageLayout
	_                     uint32
}

// ComponentMapping is VkComponentMapping (identity when zero).
type ComponentMapping struct {
	R uint32
	G uint32
	B uint32
	A uint32
}

// ImageSubresourceRange is VkImageSubresourceRange.
type ImageSubresourceRange struct {
	AspectMask     ImageAspectFlags
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// ImageSubresourceLayers is VkImageSubresourceLayers.
type ImageSubresourceLayers struct {
	AspectMask     ImageAspectFlags
	MipLevel       uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// ImageViewCreateInfo is VkImageViewCreateInfo.
type ImageViewCreateInfo struct {
	SType            StructureType
	_                uint32
	PNext            unsafe.Pointer
	Flags            Flags
	_                uint32
	Image            Image
	ViewType         ImageViewType
	Format           Format
	Components       ComponentMapping
	SubresourceRange ImageSubresourceRange
	_                uint32
}

// SamplerCreateInfo is VkSamplerCreateInfo.
type SamplerCreateInfo struct {
	SType                   StructureType
	_                       uint32
	PNext                   unsafe.Pointer
	Flags                   Flags
	MagFilter               Filter
	MinFilter               Filter
	MipmapMode              SamplerMipmapMode
	AddressModeU            SamplerAddressMode
	AddressModeV            SamplerAddressMode
	AddressModeW            SamplerAddressMode
	MipLodBias              float32
	AnisotropyEnable        uint32
	MaxAnisotropy           float32
	CompareEnable           uint32
	CompareOp               CompareOp
	MinLod                  float32
	MaxLod                  float32
	BorderColor             BorderColor
	UnnormalizedCoordinates uint32
	_                       uint32
}

// ShaderModuleCreateInfo is VkShaderModuleCreateInfo.
type ShaderModuleCreateInfo struct {
	SType    StructureType
	_        uint32
	PNext    unsafe.Pointer
	Flags    Flags
	_        uint32
	CodeSize uintptr
	PCode    *uint32
}

// DescriptorSetLayoutBinding is VkDescriptorSetLayoutBinding.
type DescriptorSetLayoutBinding struct {
	Binding            uint32
	DescriptorType     DescriptorType
	DescriptorCount    uint32
	StageFlags         uint32
	_                  uint32
	PImmutableSamplers *Sampler
}

// DescriptorSetLayoutCreateInfo is VkDescriptorSetLayoutCreateInfo.
type DescriptorSetLayoutCreateInfo struct {
	SType        StructureType
	_            uint32
	PNext        unsafe.Pointer
	Flags        Flags
	BindingCount uint32
	PBindings    *DescriptorSetLayoutBinding
}

// DescriptorPoolSize is VkDescriptorPoolSize.
type DescriptorPoolSize struct {
	Type            DescriptorType
	DescriptorCount uint32
}

// DescriptorPoolCreateInfo is VkDescriptorPoolCreateInfo.
type DescriptorPoolCreateInfo struct {
	SType         StructureType
	_             uint32
	PNext         unsafe.Pointer
	Flags         DescriptorPoolFlags
	MaxSets       uint32
	PoolSizeCount uint32
	_             uint32
	PPoolSizes    *DescriptorPoolSize
}

// DescriptorSetAllocateInfo is VkDescriptorSetAllocateInfo.
type DescriptorSetAllocateInfo struct {
	SType              StructureType
	_                  uint32
	PNext              unsafe.Pointer
	DescriptorPool     DescriptorPool
	DescriptorSetCount uint32
	_                  uint32
	PSetLayouts        *DescriptorSetLayout
}

// DescriptorBufferInfo is VkDescriptorBufferInfo.
type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset uint64
	Range  uint64
}

// DescriptorImageInfo is VkDescriptorImageInfo.
type DescriptorImageInfo struct {
	Sampler     Sampler
	ImageView   ImageView
	ImageLayout ImageLayout
	_           uint32
}

// WriteDescriptorSet is VkWriteDescriptorSet.
type WriteDescriptorSet struct {
	SType            StructureType
	_                uint32
	PNext            unsafe.Pointer
	DstSet           DescriptorSet
	DstBinding       uint32
	DstArrayElement  uint32
	DescriptorCount  uint32
	DescriptorType   DescriptorType
	PImageInfo       *DescriptorImageInfo
	PBufferInfo      *DescriptorBufferInfo
	PTexelBufferView unsafe.Pointer
}

// PushConstantRange is VkPushConstantRange.
type PushConstantRange struct {
	StageFlags uint32
	Offset     uint32
	Size       uint32
}

// PipelineLayoutCreateInfo is VkPipelineLayoutCreateInfo.
type PipelineLayoutCreateInfo struct {
	SType                  StructureType
	_                      uint32
	PNext                  unsafe.Pointer
	Flags                  Flags
	SetLayoutCount         uint32
	PSetLayouts            *DescriptorSetLayout
	PushConstantRangeCount uint32
	_                      uint32
	PPushConstantRanges    *PushConstantRange
}

// AttachmentDescription is VkAttachmentDescription.
type AttachmentDescription struct {
	Flags          Flags
	Format         Format
	Samples        SampleCountFlagBits
	LoadOp         AttachmentLoadOp
	StoreOp        AttachmentStoreOp
	StencilLoadOp  AttachmentLoadOp
	StencilStoreOp AttachmentStoreOp
	InitialLayout  ImageLayout
	FinalLayout    ImageLayout
}

// AttachmentReference is VkAttachmentReference.
type AttachmentReference struct {
	Attachment uint32
	Layout     ImageLayout
}

// SubpassDescription is VkSubpassDescription.
type SubpassDescription struct {
	Flags                   Flags
	PipelineBindPoint       PipelineBindPoint
	InputAttachmentCount    uint32
	_                       uint32
	PInputAttachments       *AttachmentReference
	ColorAttachmentCount    uint32
	_                       uint32
	PColorAttachments       *AttachmentReference
	PResolveAttachments     *AttachmentReference
	PDepthStencilAttachment *AttachmentReference
	PreserveAttachmentCount uint32
	_                       uint32
	PPreserveAttachments    *uint32
}

// SubpassDependency is VkSubpassDependency.
type SubpassDependency struct {
	SrcSubpass      uint32
	DstSubpass      uint32
	SrcStageMask    PipelineStageFlags
	DstStageMask    PipelineStageFlags
	SrcAccessMask   AccessFlags
	DstAccessMask   AccessFlags
	DependencyFlags DependencyFlags
}

// RenderPassCreateInfo is VkRenderPassCreateInfo.
type RenderPassCreateInfo struct {
	SType           StructureType
	_               uint32
	PNext           unsafe.Pointer
	Flags           Flags
	AttachmentCount uint32
	PAttachments    *AttachmentDescription
	SubpassCount    uint32
	_               uint32
	PSubpasses      *SubpassDescription
	DependencyCount uint32
	_               uint32
	PDependencies   *SubpassDependency
}

// FramebufferCreateInfo is VkFramebufferCreateInfo.
type FramebufferCreateInfo struct {
	SType           StructureType
	_               uint32
	PNext           unsafe.Pointer
	Flags           Flags
	_               uint32
	RenderPass      RenderPass
	AttachmentCount uint32
	_               uint32
	PAttachments    *ImageView
	Width           uint32
	Height          uint32
	Layers          uint32
	_               uint32
}

// SpecializationMapEntry is VkSpecializationMapEntry.
type SpecializationMapEntry struct {
	ConstantID uint32
	Offset     uint32
	Size       uintptr
}

// SpecializationInfo is VkSpecializationInfo.
type SpecializationInfo struct {
	MapEntryCount uint32
	_             uint32
	PMapEntries   *SpecializationMapEntry
	DataSize      uintptr
	PData         unsafe.Pointer
}

// PipelineShaderStageCreateInfo is VkPipelineShaderStageCreateInfo.
type PipelineShaderStageCreateInfo struct {
	SType               StructureType
	_                   uint32
	PNext               unsafe.Pointer
	Flags               Flags
	Stage               ShaderStageFlagBits
	Module              ShaderModule
	PName               *byte
	PSpecializationInfo *SpecializationInfo
}

// VertexInputBindingDescription is VkVertexInputBindingDescription.
type VertexInputBindingDescription struct {
	Binding   uint32
	Stride    uint32
	InputRate uint32
}

// VertexInputAttributeDescription is
// VkVertexInputAttributeDescription.
type VertexInputAttributeDescription struct {
	Location uint32
	Binding  uint32
	Format   Format
	Offset   uint32
}

// PipelineVertexInputStateCreateInfo is
// VkPipelineVertexInputStateCreateInfo.
type PipelineVertexInputStateCreateInfo struct {
	SType                           StructureType
	_                               uint32
	PNext                           unsafe.Pointer
	Flags                           Flags
	VertexBindingDescriptionCount   uint32
	PVertexBindingDescriptions      *VertexInputBindingDescription
	VertexAttributeDescriptionCount uint32
	_                               uint32
	PVertexAttributeDescriptions    *VertexInputAttributeDescription
}

// PipelineInputAssemblyStateCreateInfo is
// VkPipelineInputAssemblyStateCreateInfo.
type PipelineInputAssemblyStateCreateInfo struct {
	SType                  StructureType
	_                      uint32
	PNext                  unsafe.Pointer
	Flags                  Flags
	Topology               PrimitiveTopology
	PrimitiveRestartEnable uint32
	_                      uint32
}

// PipelineViewportStateCreateInfo is
// VkPipelineViewportStateCreateInfo.
type PipelineViewportStateCreateInfo struct {
	SType         StructureType
	_             uint32
	PNext         unsafe.Pointer
	Flags         Flags
	ViewportCount uint32
	PViewports    *Viewport
	ScissorCount  uint32
	_             uint32
	PScissors     *Rect2D
}

// PipelineRasterizationStateCreateInfo is
// VkPipelineRasterizationStateCreateInfo.
type PipelineRasterizationStateCreateInfo struct {
	SType                   StructureType
	_                       uint32
	PNext                   unsafe.Pointer
	Flags                   Flags
	DepthClampEnable        uint32
	RasterizerDiscardEnable uint32
	PolygonMode             PolygonMode
	CullMode                CullModeFlags
	FrontFace               FrontFace
	DepthBiasEnable         uint32
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
	LineWidth               float32
}

// PipelineMultisampleStateCreateInfo is
// VkPipelineMultisampleStateCreateInfo.
type PipelineMultisampleStateCreateInfo struct {
	SType                 StructureType
	_                     uint32
	PNext                 unsafe.Pointer
	Flags                 Flags
	RasterizationSamples  SampleCountFlagBits
	SampleShadingEnable   uint32
	MinSampleShading      float32
	PSampleMask           *uint32
	AlphaToCoverageEnable uint32
	AlphaToOneEnable      uint32
}

// StencilOpState is VkStencilOpState.
type StencilOpState struct {
	FailOp      StencilOp
	PassOp      StencilOp
	DepthFailOp StencilOp
	CompareOp   CompareOp
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
}

// PipelineDepthStencilStateCreateInfo is
// VkPipelineDepthStencilStateCreateInfo.
type PipelineDepthStencilStateCreateInfo struct {
	SType                 StructureType
	_                     uint32
	PNext                 unsafe.Pointer
	Flags                 Flags
	DepthTestEnable       uint32
	DepthWriteEnable      uint32
	DepthCompareOp        CompareOp
	DepthBoundsTestEnable uint32
	StencilTestEnable     uint32
	Front                 StencilOpState
	Back                  StencilOpState
	MinDepthBounds        float32
	MaxDepthBounds        float32
}

// PipelineColorBlendAttachmentState is
// VkPipelineColorBlendAttachmentState.
type PipelineColorBlendAttachmentState struct {
	BlendEnable         uint32
	SrcColorBlendFactor BlendFactor
	DstColorBlendFactor BlendFactor
	ColorBlendOp        BlendOp
	SrcAlphaBlendFactor BlendFactor
	DstAlphaBlendFactor BlendFactor
	AlphaBlendOp        BlendOp
	ColorWriteMask      ColorComponentFlags
}

// PipelineColorBlendStateCreateInfo is
// VkPipelineColorBlendStateCreateInfo.
type PipelineColorBlendStateCreateInfo struct {
	SType           StructureType
	_               uint32
	PNext           unsafe.Pointer
	Flags           Flags
	LogicOpEnable   uint32
	LogicOp         LogicOp
	AttachmentCount uint32
	PAttachments    *PipelineColorBlendAttachmentState
	BlendConstants  [4]float32
}

// PipelineDynamicStateCreateInfo is
// VkPipelineDynamicStateCreateInfo.
type PipelineDynamicStateCreateInfo struct {
	SType             StructureType
	_                 uint32
	PNext             unsafe.Pointer
	Flags             Flags
	DynamicStateCount uint32
	PDynamicStates    *DynamicState
}

// GraphicsPipelineCreateInfo is VkGraphicsPipelineCreateInfo.
type GraphicsPipelineCreateInfo struct {
	SType               StructureType
	_                   uint32
	PNext               unsafe.Pointer
	Flags               Flags
	StageCount          uint32
	PStages             *PipelineShaderStageCreateInfo
	PVertexInputState   *PipelineVertexInputStateCreateInfo
	PInputAssemblyState *PipelineInputAssemblyStateCreateInfo
	PTessellationState  unsafe.Pointer
	PViewportState      *PipelineViewportStateCreateInfo
	PRasterizationState *PipelineRasterizationStateCreateInfo
	PMultisampleState   *PipelineMultisampleStateCreateInfo
	PDepthStencilState  *PipelineDepthStencilStateCreateInfo
	PColorBlendState    *PipelineColorBlendStateCreateInfo
	PDynamicState       *PipelineDynamicStateCreateInfo
	Layout              PipelineLayout
	RenderPass          RenderPass
	Subpass             uint32
	_                   uint32
	BasePipelineHandle  Pipeline
	BasePipelineIndex   int32
	_                   uint32
}

// ComputePipelineCreateInfo is VkComputePipelineCreateInfo.
type ComputePipelineCreateInfo struct {
	SType              StructureType
	_                  uint32
	PNext              unsafe.Pointer
	Flags              Flags
	_                  uint32
	Stage              PipelineShaderStageCreateInfo
	Layout             PipelineLayout
	BasePipelineHandle Pipeline
	BasePipelineIndex  int32
	_                  uint32
}

// CommandPoolCreateInfo is VkCommandPoolCreateInfo.
type CommandPoolCreateInfo struct {
	SType            StructureType
	_                uint32
	PNext            unsafe.Pointer
	Flags            CommandPoolCreateFlags
	QueueFamilyIndex uint32
}

// CommandBufferAllocateInfo is VkCommandBufferAllocateInfo.
type CommandBufferAllocateInfo struct {
	SType              StructureType
	_                  uint32
	PNext              unsafe.Pointer
	CommandPool        CommandPool
	Level              CommandBufferLevel
	CommandBufferCount uint32
}

// CommandBufferBeginInfo is VkCommandBufferBeginInfo.
type CommandBufferBeginInfo struct {
	SType            StructureType
	_                uint32
	PNext            unsafe.Pointer
	Flags            CommandBufferUsageFlags
	_                uint32
	PInheritanceInfo unsafe.Pointer
}

// ClearValue is VkClearValue: 16 bytes interpreted as color or
// depth-stencil.
type ClearValue [4]uint32

// ClearColorValue builds a float clear color.
func ClearColorValue(r, g, b, a float32) ClearValue {
	return ClearValue{
		floatBits(r), floatBits(g), floatBits(b), floatBits(a),
	}
}

// ClearDepthStencilValue builds a depth-stencil clear value.
func ClearDepthStencilValue(depth float32, stencil uint32) ClearValue {
	return ClearValue{floatBits(depth), stencil, 0, 0}
}

// RenderPassBeginInfo is VkRenderPassBeginInfo.
type RenderPassBeginInfo struct {
	SType           StructureType
	_               uint32
	PNext           unsafe.Pointer
	RenderPass      RenderPass
	Framebuffer     Framebuffer
	RenderArea      Rect2D
	ClearValueCount uint32
	_               uint32
	PClearValues    *ClearValue
}

// BufferCopy is VkBufferCopy.
type BufferCopy struct {
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

// BufferImageCopy is VkBufferImageCopy.
type BufferImageCopy struct {
	BufferOffset      uint64
	BufferRowLength   uint32
	BufferImageHeight uint32
	ImageSubresource  ImageSubresourceLayers
	ImageOffset       Offset3D
	ImageExtent       Extent3D
}

// ImageBlit is VkImageBlit.
type ImageBlit struct {
	SrcSubresource ImageSubresourceLayers
	SrcOffsets     [2]Offset3D
	DstSubresource ImageSubresourceLayers
	DstOffsets     [2]Offset3D
}

// MemoryBarrier is VkMemoryBarrier.
type MemoryBarrier struct {
	SType         StructureType
	_             uint32
	PNext         unsafe.Pointer
	SrcAccessMask AccessFlags
	DstAccessMask AccessFlags
}

// BufferMemoryBarrier is VkBufferMemoryBarrier.
type BufferMemoryBarrier struct {
	SType               StructureType
	_                   uint32
	PNext               unsafe.Pointer
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              Buffer
	Offset              uint64
	Size                uint64
}

// ImageMemoryBarrier is VkImageMemoryBarrier.
type ImageMemoryBarrier struct {
	SType               StructureType
	_                   uint32
	PNext               unsafe.Pointer
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	OldLayout           ImageLayout
	NewLayout           ImageLayout
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               Image
	SubresourceRange    ImageSubresourceRange
	_                   uint32
}

// SubmitInfo is VkSubmitInfo.
type SubmitInfo struct {
	SType                StructureType
	_                    uint32
	PNext                unsafe.Pointer
	WaitSemaphoreCount   uint32
	_                    uint32
	PWaitSemaphores      *Semaphore
	PWaitDstStageMask    *PipelineStageFlags
	CommandBufferCount   uint32
	_                    uint32
	PCommandBuffers      *CommandBuffer
	SignalSemaphoreCount uint32
	_                    uint32
	PSignalSemaphores    *Semaphore
}

// PresentInfoKHR is VkPresentInfoKHR.
type PresentInfoKHR struct {
	SType              StructureType
	_                  uint32
	PNext              unsafe.Pointer
	WaitSemaphoreCount uint32
	_                  uint32
	PWaitSemaphores    *Semaphore
	SwapchainCount     uint32
	_                  uint32
	PSwapchains        *SwapchainKHR
	PImageIndices      *uint32
	PResults           *Result
}

// FenceCreateInfo is VkFenceCreateInfo.
type FenceCreateInfo struct {
	SType StructureType
	_     uint32
	PNext unsafe.Pointer
	Flags FenceCreateFlags
	_     uint32
}

// SemaphoreCreateInfo is VkSemaphoreCreateInfo.
type SemaphoreCreateInfo struct {
	SType StructureType
	_     uint32
	PNext unsafe.Pointer
	Flags Flags
	_     uint32
}

// SurfaceCapabilitiesKHR is VkSurfaceCapabilitiesKHR.
type SurfaceCapabilitiesKHR struct {
	MinImageCount           uint32
	MaxImageCount           uint32
	CurrentExtent           Extent2D
	MinImageExtent          Extent2D
	MaxImageExtent          Extent2D
	MaxImageArrayLayers     uint32
	SupportedTransforms     SurfaceTransformFlags
	CurrentTransform        SurfaceTransformFlags
	SupportedCompositeAlpha CompositeAlphaFlags
	SupportedUsageFlags     ImageUsageFlags
}

// SurfaceFormatKHR is VkSurfaceFormatKHR.
type SurfaceFormatKHR struct {
	Format     Format
	ColorSpace ColorSpaceKHR
}

// SwapchainCreateInfoKHR is VkSwapchainCreateInfoKHR.
type SwapchainCreateInfoKHR struct {
	SType                 StructureType
	_                     uint32
	PNext                 unsafe.Pointer
	Flags                 Flags
	_                     uint32
	Surface               SurfaceKHR
	MinImageCount         uint32
	ImageFormat           Format
	ImageColorSpace       ColorSpaceKHR
	ImageExtent           Extent2D
	ImageArrayLayers      uint32
	ImageUsage            ImageUsageFlags
	ImageSharingMode      SharingMode
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
	PreTransform          SurfaceTransformFlags
	CompositeAlpha        CompositeAlphaFlags
	PresentMode           PresentModeKHR
	Clipped               uint32
	_                     uint32
	OldSwapchain          SwapchainKHR
}

// XlibSurfaceCreateInfoKHR is VkXlibSurfaceCreateInfoKHR.
type XlibSurfaceCreateInfoKHR struct {
	SType  StructureType
	_      uint32
	PNext  unsafe.Pointer
	Flags  Flags
	_      uint32
	Dpy    uintptr
	Window uintptr
}

// Win32SurfaceCreateInfoKHR is VkWin32SurfaceCreateInfoKHR.
type Win32SurfaceCreateInfoKHR struct {
	SType     StructureType
	_         uint32
	PNext     unsafe.Pointer
	Flags     Flags
	_         uint32
	Hinstance uintptr
	Hwnd      uintptr
}

// MakeVersion packs a Vulkan API version number.
func MakeVersion(major, minor, patch uint32) uint32 {
	return major<<22 | minor<<12 | patch
}

// CString returns a null-terminated byte slice for a Go string.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// CStringArray builds an array of pointers to null-terminated strings.
// The returned backing slice must stay reachable for the call's
// duration.
func CStringArray(strs []string) ([]*byte, [][]byte) {
	if len(strs) == 0 {
		return nil, nil
	}
	backing := make([][]byte, len(strs))
	ptrs := make([]*byte, len(strs))
	for i, s := range strs {
		backing[i] = CString(s)
		ptrs[i] = &backing[i][0]
	}
	return ptrs, backing
}

func floatBits(f float32) uint32 {
	return *(*uint32)(unsafe.Pointer(&f))
}
